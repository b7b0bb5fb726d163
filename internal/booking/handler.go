package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymcore/internal/api"
	"gymcore/internal/auth"
	"gymcore/internal/availability"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Not allowed to act for this member or trainer"})
}

// @Summary      Book a private session
// @Description  Books a one-to-one session and creates its pending billing item. Price defaults to the gym's session rate.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.BookSessionRequest true "Session payload"
// @Success      201 {object} booking.SessionBooking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) BookSession(c *gin.Context) {
	var req BookSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if !auth.ActsFor(c, req.MemberID, req.TrainerID) {
		forbidden(c)
		return
	}

	result, err := h.service.BookPrivateSession(c.Request.Context(), req)
	if err != nil {
		api.RespondError(c, err, "Failed to book session")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary      Reschedule a private session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body booking.RescheduleSessionRequest true "New room and/or time"
// @Success      200 {object} booking.SessionBooking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /sessions/{id} [patch]
func (h *Handler) RescheduleSession(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleSessionRequest
	if !api.BindJSON(c, &req) {
		return
	}

	result, err := h.service.ReschedulePrivateSession(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err, "Failed to reschedule session")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Create a class
// @Description  The class is pinned to the top of the start hour and runs for one hour.
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.SaveClassRequest true "Class payload"
// @Success      201 {object} booking.ClassSchedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	h.saveClass(c, 0, http.StatusCreated)
}

// @Summary      Update a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Param        request body booking.SaveClassRequest true "Class payload"
// @Success      200 {object} booking.ClassSchedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /classes/{id} [put]
func (h *Handler) UpdateClass(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}
	h.saveClass(c, id, http.StatusOK)
}

func (h *Handler) saveClass(c *gin.Context, classID, status int) {
	var req SaveClassRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if !auth.ActsFor(c, 0, req.TrainerID) {
		forbidden(c)
		return
	}

	class, err := h.service.CreateOrUpdateClass(c.Request.Context(), classID, req)
	if err != nil {
		api.RespondError(c, err, "Failed to save class")
		return
	}

	c.JSON(status, class)
}

// @Summary      Register for a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Param        request body booking.RegisterRequest true "Member"
// @Success      201 {object} booking.Registration
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /classes/{id}/register [post]
func (h *Handler) RegisterForClass(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req RegisterRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if !auth.ActsFor(c, req.MemberID, 0) {
		forbidden(c)
		return
	}

	result, err := h.service.RegisterForClass(c.Request.Context(), id, req.MemberID)
	if err != nil {
		api.RespondError(c, err, "Failed to register for class")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary      Add an availability window
// @Description  Windows are weekly, hour aligned, and may not touch another window on the same day.
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Trainer ID"
// @Param        request body availability.SetWindowRequest true "Window"
// @Success      201 {object} availability.Window
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /trainers/{id}/availability [post]
func (h *Handler) SetAvailability(c *gin.Context) {
	trainerID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req availability.SetWindowRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if !auth.ActsFor(c, 0, trainerID) {
		forbidden(c)
		return
	}

	window, err := h.service.SetTrainerAvailability(c.Request.Context(), trainerID, req)
	if err != nil {
		api.RespondError(c, err, "Failed to add availability")
		return
	}

	c.JSON(http.StatusCreated, window)
}

// @Summary      Change an availability window's hours
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Window ID"
// @Param        request body availability.UpdateWindowRequest true "New hours"
// @Success      200 {object} availability.Window
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /availability/{id} [put]
func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req availability.UpdateWindowRequest
	if !api.BindJSON(c, &req) {
		return
	}

	window, err := h.service.UpdateTrainerAvailability(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err, "Failed to update availability")
		return
	}

	c.JSON(http.StatusOK, window)
}

// @Summary      List a trainer's availability
// @Tags         availability
// @Produce      json
// @Param        id path int true "Trainer ID"
// @Success      200 {array} availability.Window
// @Failure      404 {object} api.ErrorResponse
// @Router       /trainers/{id}/availability [get]
func (h *Handler) ListAvailability(c *gin.Context) {
	trainerID, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	windows, err := h.service.ListTrainerAvailability(c.Request.Context(), trainerID)
	if err != nil {
		api.RespondError(c, err, "Failed to list availability")
		return
	}

	c.JSON(http.StatusOK, windows)
}

// @Summary      Move a session to another room
// @Tags         admin,sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body booking.ReassignRoomRequest true "Target room and optional new time"
// @Success      200 {object} booking.SessionBooking
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/sessions/{id}/room [post]
func (h *Handler) AdminReassignRoom(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req ReassignRoomRequest
	if !api.BindJSON(c, &req) {
		return
	}

	result, err := h.service.AdminReassignSessionRoom(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err, "Failed to reassign room")
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Move a class to another room and time
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Param        request body booking.RescheduleClassRequest true "Target room and time"
// @Success      200 {object} booking.ClassSchedule
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/classes/{id}/reschedule [post]
func (h *Handler) AdminRescheduleClass(c *gin.Context) {
	id, ok := api.IntParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleClassRequest
	if !api.BindJSON(c, &req) {
		return
	}

	class, err := h.service.AdminRescheduleClass(c.Request.Context(), id, req)
	if err != nil {
		api.RespondError(c, err, "Failed to reschedule class")
		return
	}

	c.JSON(http.StatusOK, class)
}
