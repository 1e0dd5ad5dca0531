package handler

import (
	"net/http"
	"strconv"

	"impactcore/internal/middleware"
	"impactcore/internal/service"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FeeHandler struct {
	feeService service.FeeService
	exemptions service.ExemptionEvaluator
	auth       *middleware.Auth
}

func NewFeeHandler(feeService service.FeeService, exemptions service.ExemptionEvaluator, auth *middleware.Auth) *FeeHandler {
	return &FeeHandler{feeService: feeService, exemptions: exemptions, auth: auth}
}

func (h *FeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api")
	group.Use(h.auth.RequireRole())
	{
		group.POST("/fees/calculate", h.CalculateFees)
		group.GET("/exemptions/check", h.CheckExemption)
	}
}

// CalculateFees handles POST /api/fees/calculate
// @Summary      Quote fees for an order
// @Description  Platform fee, payment fee and sales tax deducted from seller proceeds. Amounts are strings with two decimals.
// @Tags         fees
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.FeeQuoteRequest  true  "Order"
// @Success      200      {object}  response.Response{data=service.FeeQuoteResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/fees/calculate [post]
func (h *FeeHandler) CalculateFees(c *gin.Context) {
	var req service.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	quote, err := h.feeService.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, quote))
}

// CheckExemption handles GET /api/exemptions/check
// @Summary      Check sales tax exemption
// @Description  Evaluates whether a buyer's purchase in a state is exempt. Lookup failures answer not exempt.
// @Tags         fees
// @Security     BearerAuth
// @Produce      json
// @Param        buyer_id    query     string  false  "Buyer user ID"
// @Param        state       query     string  false  "Seller state code"
// @Param        charitable  query     bool    false  "Charitable use (default true)"
// @Param        service     query     bool    false  "Purchase is a service"
// @Success      200         {object}  response.Response{data=service.ExemptionDecision}
// @Failure      400         {object}  response.Response
// @Router       /api/exemptions/check [get]
func (h *FeeHandler) CheckExemption(c *gin.Context) {
	req := service.ExemptionRequest{IsCharitableUse: true}

	if raw := c.Query("buyer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "Invalid buyer_id")
			return
		}
		req.BuyerID = &id
	}
	if state := c.Query("state"); state != "" {
		req.StateCode = &state
	}
	if raw := c.Query("charitable"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "Invalid charitable flag")
			return
		}
		req.IsCharitableUse = v
	}
	if raw := c.Query("service"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "Invalid service flag")
			return
		}
		req.IsService = v
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.exemptions.Evaluate(c.Request.Context(), req)))
}
