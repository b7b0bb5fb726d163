package gym

import (
	"net/http"

	"gymcore/internal/api"
	"gymcore/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a member
// @Tags         admin,members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateMemberRequest true "Member payload"
// @Success      201 {object} gym.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	member, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err, "Failed to create member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// @Summary      Update a member's profile and goals
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Param        request body gym.UpdateMemberRequest true "Fields to change"
// @Success      200 {object} gym.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id} [put]
func (h *Handler) UpdateMember(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	if !auth.ActsFor(c, memberID, 0) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to act for this member"})
		return
	}

	var req UpdateMemberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	member, err := h.service.UpdateMember(c.Request.Context(), memberID, req)
	if err != nil {
		api.RespondError(c, err, "Failed to update member")
		return
	}

	c.JSON(http.StatusOK, member)
}

// @Summary      Search the members a trainer works with
// @Tags         trainers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trainer ID"
// @Param        q query string false "Case-insensitive name fragment"
// @Success      200 {array} gym.MemberLookup
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers/{id}/members [get]
func (h *Handler) LookupTrainerMembers(c *gin.Context) {
	trainerID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	if !auth.ActsFor(c, 0, trainerID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to act for this trainer"})
		return
	}

	members, err := h.service.LookupTrainerMembers(c.Request.Context(), trainerID, c.Query("q"))
	if err != nil {
		api.RespondError(c, err, "Failed to look up members")
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Create a trainer
// @Tags         admin,trainers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateTrainerRequest true "Trainer payload"
// @Success      201 {object} gym.Trainer
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if !api.BindJSON(c, &req) {
		return
	}

	trainer, err := h.service.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err, "Failed to create trainer")
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// @Summary      Create a room
// @Tags         admin,rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body gym.CreateRoomRequest true "Room payload"
// @Success      201 {object} gym.Room
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if !api.BindJSON(c, &req) {
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err, "Failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} gym.Room
// @Failure      500 {object} api.ErrorResponse
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		api.RespondError(c, err, "Failed to fetch rooms")
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// @Summary      Log a health metric
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Param        request body gym.LogHealthMetricRequest true "Metric payload"
// @Success      201 {object} gym.HealthMetric
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/metrics [post]
func (h *Handler) LogHealthMetric(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	if !auth.ActsFor(c, memberID, 0) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to act for this member"})
		return
	}

	var req LogHealthMetricRequest
	if !api.BindJSON(c, &req) {
		return
	}

	metric, err := h.service.LogHealthMetric(c.Request.Context(), memberID, req)
	if err != nil {
		api.RespondError(c, err, "Failed to log health metric")
		return
	}

	c.JSON(http.StatusCreated, metric)
}

// @Summary      Health metric history, most recent first
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Member ID"
// @Success      200 {array} gym.HealthMetric
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{id}/metrics [get]
func (h *Handler) ListHealthMetrics(c *gin.Context) {
	memberID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	if !auth.ActsFor(c, memberID, 0) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to act for this member"})
		return
	}

	metrics, err := h.service.GetHealthHistory(c.Request.Context(), memberID)
	if err != nil {
		api.RespondError(c, err, "Failed to fetch health metrics")
		return
	}

	c.JSON(http.StatusOK, metrics)
}
