package handler

import (
	"net/http"

	"impactcore/internal/middleware"
	"impactcore/internal/model"
	"impactcore/internal/service"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler serves organizations, their listings and compliance.
type OrganizationHandler struct {
	directory  service.DirectoryService
	compliance service.ComplianceService
	auth       *middleware.Auth
}

func NewOrganizationHandler(directory service.DirectoryService, compliance service.ComplianceService, auth *middleware.Auth) *OrganizationHandler {
	return &OrganizationHandler{directory: directory, compliance: compliance, auth: auth}
}

func (h *OrganizationHandler) RegisterRoutes(router *gin.RouterGroup) {
	orgs := router.Group("/api/organizations")
	{
		orgs.POST("", h.auth.RequireRole(model.RoleAdmin, model.RoleStaff), h.CreateOrganization)
		orgs.GET("/:id", h.auth.RequireRole(), h.GetOrganization)
		orgs.POST("/:id/compliance-check", h.auth.RequireRole(model.RoleAdmin, model.RoleStaff), h.CheckCompliance)
	}

	router.POST("/api/listings", h.auth.RequireRole(), h.CreateListing)
	router.POST("/api/compliance/evaluate", h.auth.RequireRole(), h.EvaluateCompliance)
}

// CreateOrganization handles POST /api/organizations
// @Summary      Register an organization
// @Tags         organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateOrganizationRequest  true  "Organization"
// @Success      201      {object}  response.Response{data=model.Organization}
// @Failure      400      {object}  response.Response
// @Router       /api/organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	org, err := h.directory.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, org))
}

// GetOrganization handles GET /api/organizations/:id
// @Summary      Get an organization
// @Tags         organizations
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  response.Response{data=model.Organization}
// @Failure      404  {object}  response.Response
// @Router       /api/organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	org, err := h.directory.GetOrganization(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, org))
}

// CheckCompliance handles POST /api/organizations/:id/compliance-check
// @Summary      Re-evaluate an organization's filing compliance
// @Description  Evaluates the stored tax period against the configured threshold and persists the result
// @Tags         compliance
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  response.Response{data=model.ComplianceRecord}
// @Failure      404  {object}  response.Response
// @Router       /api/organizations/{id}/compliance-check [post]
func (h *OrganizationHandler) CheckCompliance(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	record, err := h.compliance.CheckOrganization(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// EvaluateCompliance handles POST /api/compliance/evaluate
// @Summary      Evaluate filing compliance
// @Description  Pure evaluation of a tax period (YYYYMM) against the lock threshold. Nothing is stored.
// @Tags         compliance
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.ComplianceEvaluateRequest  true  "Filing"
// @Success      200      {object}  response.Response{data=model.ComplianceRecord}
// @Router       /api/compliance/evaluate [post]
func (h *OrganizationHandler) EvaluateCompliance(c *gin.Context) {
	var req service.ComplianceEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.compliance.Evaluate(req)))
}

// CreateListing handles POST /api/listings
// @Summary      Create a listing
// @Tags         organizations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateListingRequest  true  "Listing"
// @Success      201      {object}  response.Response{data=model.Listing}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/listings [post]
func (h *OrganizationHandler) CreateListing(c *gin.Context) {
	var req service.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	listing, err := h.directory.CreateListing(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, listing))
}
