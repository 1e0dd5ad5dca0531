package handler

import (
	"context"
	"net/http"
	"time"

	"impactcore/internal/middleware"
	"impactcore/internal/model"
	"impactcore/internal/service"
	"impactcore/internal/websocket"
	"impactcore/pkg/pagination"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
)

type ImpactHandler struct {
	impact service.ImpactService
	events Publisher
	auth   *middleware.Auth
	now    func() time.Time
}

func NewImpactHandler(impact service.ImpactService, events Publisher, auth *middleware.Auth) *ImpactHandler {
	return &ImpactHandler{impact: impact, events: orNoopPublisher(events), auth: auth, now: time.Now}
}

func (h *ImpactHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/impact")
	writers := h.auth.RequireRole(model.RoleAdmin, model.RoleStaff)
	{
		group.POST("/volunteer", writers, h.AwardVolunteer)
		group.POST("/donation", writers, h.AwardDonation)
		group.POST("/follow", writers, h.AwardFollow)
		group.DELETE("/:source_type/:source_id", writers, h.RemoveSource)

		group.GET("/users/:id/score", h.auth.RequireRole(), h.GetScore)
		group.GET("/leaderboard", h.auth.RequireRole(), h.Leaderboard)
	}
}

// AwardVolunteer handles POST /api/impact/volunteer
// @Summary      Award points for an approved timesheet
// @Description  50 points per hour plus the critical-service bonus. Repeat calls for the same timesheet award nothing.
// @Tags         impact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.VolunteerActivity  true  "Timesheet"
// @Success      200      {object}  response.Response{data=service.AwardResult}
// @Failure      400      {object}  response.Response
// @Router       /api/impact/volunteer [post]
func (h *ImpactHandler) AwardVolunteer(c *gin.Context) {
	var req service.VolunteerActivity
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	h.award(c, func(ctx context.Context) (*service.AwardResult, error) {
		return h.impact.AwardVolunteerPoints(ctx, req)
	})
}

// AwardDonation handles POST /api/impact/donation
// @Summary      Award points for a donation
// @Description  Only completed donations earn points.
// @Tags         impact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DonationActivity  true  "Donation"
// @Success      200      {object}  response.Response{data=service.AwardResult}
// @Failure      400      {object}  response.Response
// @Router       /api/impact/donation [post]
func (h *ImpactHandler) AwardDonation(c *gin.Context) {
	var req service.DonationActivity
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	h.award(c, func(ctx context.Context) (*service.AwardResult, error) {
		return h.impact.AwardDonationPoints(ctx, req)
	})
}

// AwardFollow handles POST /api/impact/follow
// @Summary      Award points for following an organization
// @Tags         impact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.FollowActivity  true  "Follow"
// @Success      200      {object}  response.Response{data=service.AwardResult}
// @Failure      400      {object}  response.Response
// @Router       /api/impact/follow [post]
func (h *ImpactHandler) AwardFollow(c *gin.Context) {
	var req service.FollowActivity
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	h.award(c, func(ctx context.Context) (*service.AwardResult, error) {
		return h.impact.AwardFollowPoints(ctx, req)
	})
}

func (h *ImpactHandler) award(c *gin.Context, fn func(ctx context.Context) (*service.AwardResult, error)) {
	result, err := fn(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Point != nil {
		h.events.Publish(websocket.EventImpactAwarded, result)
	}
	if result.TierChanged && result.Point != nil {
		h.events.Publish(websocket.EventBadgeTierChanged, gin.H{
			"user_id":    result.Point.UserID,
			"badge_tier": result.BadgeTier,
		})
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// RemoveSource handles DELETE /api/impact/:source_type/:source_id
// @Summary      Remove points for a source event
// @Description  Used when a timesheet, donation or follow is withdrawn.
// @Tags         impact
// @Security     BearerAuth
// @Produce      json
// @Param        source_type  path      string  true  "volunteer, donation, follow or bonus"
// @Param        source_id    path      string  true  "Source event ID"
// @Success      200          {object}  response.Response{data=object}
// @Failure      400          {object}  response.Response
// @Router       /api/impact/{source_type}/{source_id} [delete]
func (h *ImpactHandler) RemoveSource(c *gin.Context) {
	removed, err := h.impact.RemoveSourcePoints(c.Request.Context(), c.Param("source_type"), c.Param("source_id"), middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"removed": removed}))
}

// GetScore handles GET /api/impact/users/:id/score
// @Summary      Get a user's impact score
// @Tags         impact
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true   "User ID"
// @Param        period  query     string  false  "monthly, quarterly or annual (default monthly)"
// @Success      200     {object}  response.Response{data=model.ScoreSummary}
// @Failure      400     {object}  response.Response
// @Router       /api/impact/users/{id}/score [get]
func (h *ImpactHandler) GetScore(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	summary, err := h.impact.CalculateImpactScore(c.Request.Context(), id, c.DefaultQuery("period", model.PeriodMonthly), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// Leaderboard handles GET /api/impact/leaderboard
// @Summary      Top users by points in a window
// @Tags         impact
// @Security     BearerAuth
// @Produce      json
// @Param        period  query     string  false  "monthly, quarterly or annual (default monthly)"
// @Param        limit   query     int     false  "Number of entries (default 10)"
// @Success      200     {object}  response.Response{data=[]model.LeaderboardEntry}
// @Failure      400     {object}  response.Response
// @Router       /api/impact/leaderboard [get]
func (h *ImpactHandler) Leaderboard(c *gin.Context) {
	entries, err := h.impact.Leaderboard(c.Request.Context(), c.DefaultQuery("period", model.PeriodMonthly), h.now(), pagination.Limit(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}
