package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
	"gymcore/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Member dashboard
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Param        now query string false "Reference time (RFC3339)"
// @Success      200 {object} dashboard.MemberDashboard
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{id}/dashboard [get]
func (h *Handler) MemberDashboard(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	now, ok := api.NowParam(c)
	if !ok {
		return
	}

	if !auth.ActsFor(c, memberID, 0) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to view this dashboard"})
		return
	}

	d, err := h.service.MemberDashboard(c.Request.Context(), memberID, now)
	if err != nil {
		api.RespondError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, d)
}

// @Summary      Trainer schedule
// @Tags         trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trainer ID"
// @Param        now query string false "Reference time (RFC3339)"
// @Success      200 {object} dashboard.TrainerSchedule
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /trainers/{id}/schedule [get]
func (h *Handler) TrainerSchedule(c *gin.Context) {
	trainerID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	now, ok := api.NowParam(c)
	if !ok {
		return
	}

	if !auth.ActsFor(c, 0, trainerID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to view this schedule"})
		return
	}

	sched, err := h.service.TrainerSchedule(c.Request.Context(), trainerID, now)
	if err != nil {
		api.RespondError(c, err, "Failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, sched)
}

// @Summary      Upcoming classes
// @Tags         classes
// @Produce      json
// @Param        now query string false "Reference time (RFC3339)"
// @Success      200 {array} dashboard.ClassListing
// @Router       /classes/upcoming [get]
func (h *Handler) UpcomingClasses(c *gin.Context) {
	now, ok := api.NowParam(c)
	if !ok {
		return
	}

	classes, err := h.service.UpcomingClasses(c.Request.Context(), now)
	if err != nil {
		api.RespondError(c, err, "Failed to list classes")
		return
	}

	c.JSON(http.StatusOK, classes)
}
