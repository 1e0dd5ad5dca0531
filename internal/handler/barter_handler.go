package handler

import (
	"net/http"

	"impactcore/internal/middleware"
	"impactcore/internal/service"
	"impactcore/internal/websocket"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
)

type BarterHandler struct {
	settlement service.SettlementService
	events     Publisher
	auth       *middleware.Auth
}

func NewBarterHandler(settlement service.SettlementService, events Publisher, auth *middleware.Auth) *BarterHandler {
	return &BarterHandler{settlement: settlement, events: orNoopPublisher(events), auth: auth}
}

func (h *BarterHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/barter/transactions")
	group.Use(h.auth.RequireRole())
	{
		group.POST("", h.CreateTransaction)
		group.GET("/:id/can-settle", h.CanSettle)
		group.POST("/:id/settle", h.Settle)
	}
}

// CreateTransaction handles POST /api/barter/transactions
// @Summary      Propose a barter
// @Description  Records a barter between two organizations. The points delta is the difference of the listings' point values.
// @Tags         barter
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBarterRequest  true  "Barter"
// @Success      201      {object}  response.Response{data=model.BarterTransaction}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/barter/transactions [post]
func (h *BarterHandler) CreateTransaction(c *gin.Context) {
	var req service.CreateBarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	tx, err := h.settlement.CreateTransaction(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tx))
}

// CanSettle handles GET /api/barter/transactions/:id/can-settle
// @Summary      Check whether a barter can settle
// @Tags         barter
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=object}
// @Failure      404  {object}  response.Response
// @Router       /api/barter/transactions/{id}/can-settle [get]
func (h *BarterHandler) CanSettle(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	can, err := h.settlement.CanSettle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"transaction_id": id, "can_settle": can}))
}

// Settle handles POST /api/barter/transactions/:id/settle
// @Summary      Settle a barter
// @Description  Moves the points delta from payer to payee atomically. A zero delta only marks the transaction settled.
// @Tags         barter
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Response{data=service.SettlementResult}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/barter/transactions/{id}/settle [post]
func (h *BarterHandler) Settle(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	result, err := h.settlement.Settle(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.events.Publish(websocket.EventBarterSettled, result)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
