package api

import (
	"errors"
	"net/http"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	reqdto "roomboard/internal/handler/dto/request"
	resdto "roomboard/internal/handler/dto/response"
	"roomboard/internal/handler/httperr"
	"roomboard/internal/handler/middleware"
	"roomboard/internal/pkg/errs"
	"roomboard/internal/usecase/commands"
	"roomboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomStoreHandler exposes the backing store: the raw fetches the room list
// is built from, and the admin room editor.
type RoomStoreHandler struct {
	src    queries.RoomSource
	cmds   commands.RoomCommands
	images room.ImageConfig
}

func NewRoomStoreHandler(src queries.RoomSource, cmds commands.RoomCommands, images room.ImageConfig) *RoomStoreHandler {
	return &RoomStoreHandler{src: src, cmds: cmds, images: images}
}

// @Summary Room availability
// @Description Every room with its hourly slots and bookings for one day
// @Tags room-store
// @Produce json
// @Security BearerAuth
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /room/availability [get]
func (h *RoomStoreHandler) Availability(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	rows, err := h.src.FetchAvailability(c.Request.Context(), date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load availability", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(date, rows, h.images))
}

// @Summary Rooms free in a range
// @Description Rooms with no approved or pending booking overlapping [start, end)
// @Tags room-store
// @Produce json
// @Security BearerAuth
// @Param start query string true "Range start (RFC3339)"
// @Param end query string true "Range end (RFC3339)"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /room/available [get]
func (h *RoomStoreHandler) AvailableInRange(c *gin.Context) {
	var q reqdto.AvailableRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	start, err := time.Parse(time.RFC3339, q.Start)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start time", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, q.End)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end time", nil)
		return
	}
	if !end.After(start) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("empty range"), "End time must be after start time", nil)
		return
	}
	rooms, err := h.src.FetchAvailableInRange(c.Request.Context(), start, end)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRooms(rooms))
}

// @Summary All rooms
// @Tags room-store
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Router /room/all [get]
func (h *RoomStoreHandler) All(c *gin.Context) {
	rooms, err := h.src.FetchAllRooms(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRooms(rooms))
}

// @Summary Organization rooms
// @Description Rooms of the caller's own organization
// @Tags room-store
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Failure 403 {object} httperr.Response
// @Router /room/organization [get]
func (h *RoomStoreHandler) Organization(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok || p.OrganizationScope() == uuid.Nil {
		httperr.AbortWithError(c, http.StatusForbidden, commands.ErrOrganizationRequired, "No organization assigned", nil)
		return
	}
	rooms, err := h.src.FetchOrganizationRooms(c.Request.Context(), p.OrganizationScope())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRooms(rooms))
}

// @Summary Create room
// @Tags room-store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Form-Token header string true "Identifies the form instance"
// @Param request body reqdto.SaveRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /room [post]
func (h *RoomStoreHandler) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing principal"), "Unauthorized", nil)
		return
	}
	var req reqdto.SaveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.CreateRoom(c.Request.Context(), p, req.ToInput(c.GetHeader(middleware.FormTokenHeader)))
	if err != nil {
		abortCommandError(c, err, commands.SaveFailedMessage)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoom(*r))
}

// @Summary Update room
// @Description Replaces the room's fields; newImageFiles are appended to the stored images
// @Tags room-store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param Form-Token header string true "Identifies the form instance"
// @Param request body reqdto.SaveRoomRequest true "Room"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /room/{id} [put]
func (h *RoomStoreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing principal"), "Unauthorized", nil)
		return
	}
	var req reqdto.SaveRoomRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	r, err := h.cmds.UpdateRoom(c.Request.Context(), p, id, req.ToInput(c.GetHeader(middleware.FormTokenHeader)))
	if err != nil {
		abortCommandError(c, err, commands.SaveFailedMessage)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoom(*r))
}

// @Summary Delete room
// @Tags room-store
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param Form-Token header string true "Identifies the form instance"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /room/{id} [delete]
func (h *RoomStoreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing principal"), "Unauthorized", nil)
		return
	}
	if err := h.cmds.DeleteRoom(c.Request.Context(), p, c.GetHeader(middleware.FormTokenHeader), id); err != nil {
		abortCommandError(c, err, commands.DeleteFailedMessage)
		return
	}
	c.Status(http.StatusNoContent)
}

// abortCommandError surfaces field errors and backend messages verbatim and
// falls back to a generic message for everything else.
func abortCommandError(c *gin.Context, err error, fallback string) {
	var v *room.ValidationError
	switch {
	case errors.As(err, &v):
		httperr.AbortWithError(c, http.StatusBadRequest, err, v.Error(), v.Fields)
	case errs.Is(err, commands.ErrSubmitInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, commands.SubmitInProgressMessage, nil)
	case errs.Is(err, commands.ErrFormTokenRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Form token required", nil)
	case errs.Is(err, commands.ErrOrganizationRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Organization is required", nil)
	case errs.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errs.Is(err, commands.ErrNotRoomAdmin), errs.Is(err, commands.ErrForbiddenOrganization):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
	default:
		httperr.AbortWithUserError(c, statusFor(err), err, fallback)
	}
}

// statusFor keeps constraint violations reported by the store as client errors.
func statusFor(err error) int {
	if errs.UserMessage(err, "") != "" {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
