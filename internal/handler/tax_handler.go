package handler

import (
	"net/http"

	"impactcore/internal/middleware"
	"impactcore/internal/model"
	"impactcore/internal/service"
	"impactcore/pkg/pagination"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaxHandler serves the state tax table and exemption certificates.
type TaxHandler struct {
	taxService  service.TaxService
	certService service.CertificateService
	auth        *middleware.Auth
}

func NewTaxHandler(taxService service.TaxService, certService service.CertificateService, auth *middleware.Auth) *TaxHandler {
	return &TaxHandler{taxService: taxService, certService: certService, auth: auth}
}

func (h *TaxHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/api/tax-rules")
	{
		rules.GET("", h.auth.RequireRole(), h.ListTaxRules)
		rules.GET("/:state", h.auth.RequireRole(), h.GetTaxRule)
		rules.POST("", h.auth.RequireRole(model.RoleAdmin), h.CreateTaxRule)
		rules.PUT("/:state", h.auth.RequireRole(model.RoleAdmin), h.UpdateTaxRule)
		rules.DELETE("/:state", h.auth.RequireRole(model.RoleAdmin), h.DeleteTaxRule)
	}

	certs := router.Group("/api/exemption-certificates")
	certs.Use(h.auth.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		certs.POST("", h.SubmitCertificate)
		certs.PUT("/:id/status", h.ReviewCertificate)
	}
}

// ListTaxRules handles GET /api/tax-rules
// @Summary      List state tax rules
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Page}
// @Router       /api/tax-rules [get]
func (h *TaxHandler) ListTaxRules(c *gin.Context) {
	p := pagination.Parse(c)
	rules, total, err := h.taxService.ListTaxRules(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Paged(http.StatusOK, rules, total, p.Page, p.Limit))
}

// GetTaxRule handles GET /api/tax-rules/:state
// @Summary      Get a state tax rule
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        state  path      string  true  "Two letter state code"
// @Success      200    {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      404    {object}  response.Response
// @Router       /api/tax-rules/{state} [get]
func (h *TaxHandler) GetTaxRule(c *gin.Context) {
	rule, err := h.taxService.GetTaxRule(c.Request.Context(), c.Param("state"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// CreateTaxRule handles POST /api/tax-rules
// @Summary      Create a state tax rule
// @Tags         tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StateTaxRuleRequest  true  "Tax rule"
// @Success      201      {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/tax-rules [post]
func (h *TaxHandler) CreateTaxRule(c *gin.Context) {
	var req service.StateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	rule, err := h.taxService.CreateTaxRule(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateTaxRule handles PUT /api/tax-rules/:state
// @Summary      Update a state tax rule
// @Tags         tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        state    path      string                       true  "Two letter state code"
// @Param        payload  body      service.StateTaxRuleRequest  true  "Tax rule"
// @Success      200      {object}  response.Response{data=service.TaxRuleResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/tax-rules/{state} [put]
func (h *TaxHandler) UpdateTaxRule(c *gin.Context) {
	var req service.StateTaxRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	rule, err := h.taxService.UpdateTaxRule(c.Request.Context(), c.Param("state"), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteTaxRule handles DELETE /api/tax-rules/:state
// @Summary      Delete a state tax rule
// @Tags         tax
// @Security     BearerAuth
// @Produce      json
// @Param        state  path      string  true  "Two letter state code"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /api/tax-rules/{state} [delete]
func (h *TaxHandler) DeleteTaxRule(c *gin.Context) {
	if err := h.taxService.DeleteTaxRule(c.Request.Context(), c.Param("state"), middleware.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Tax rule deleted"}))
}

// SubmitCertificate handles POST /api/exemption-certificates
// @Summary      Submit an exemption certificate
// @Description  Records a buyer's resale or exemption certificate for a state as pending
// @Tags         tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SubmitCertificateRequest  true  "Certificate"
// @Success      201      {object}  response.Response{data=model.ExemptionCertificate}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/exemption-certificates [post]
func (h *TaxHandler) SubmitCertificate(c *gin.Context) {
	var req service.SubmitCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	cert, err := h.certService.Submit(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, cert))
}

// ReviewCertificate handles PUT /api/exemption-certificates/:id/status
// @Summary      Approve or reject a certificate
// @Tags         tax
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                            true  "Certificate ID"
// @Param        payload  body      service.ReviewCertificateRequest  true  "Decision"
// @Success      200      {object}  response.Response{data=model.ExemptionCertificate}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/exemption-certificates/{id}/status [put]
func (h *TaxHandler) ReviewCertificate(c *gin.Context) {
	var req service.ReviewCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	cert, err := h.certService.Review(c.Request.Context(), c.Param("id"), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, cert))
}
