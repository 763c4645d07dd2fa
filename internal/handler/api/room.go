package api

import (
	"log/slog"
	"net/http"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	reqdto "roomboard/internal/handler/dto/request"
	resdto "roomboard/internal/handler/dto/response"
	"roomboard/internal/handler/httperr"
	"roomboard/internal/handler/middleware"
	"roomboard/internal/pkg/errs"
	"roomboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// RoomListOptions are client hints published with every room list.
type RoomListOptions struct {
	SearchDebounce time.Duration
}

type RoomHandler struct {
	q      queries.RoomQueries
	images room.ImageConfig
	opts   RoomListOptions
}

func NewRoomHandler(q queries.RoomQueries, images room.ImageConfig, opts RoomListOptions) *RoomHandler {
	return &RoomHandler{q: q, images: images, opts: opts}
}

// @Summary List rooms
// @Description Room list for the caller's role. End users see availability for the selected day; admins see their listing, narrowed to rooms free during business hours when a day is selected.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param date query string false "Selected day (YYYY-MM-DD)"
// @Param q query string false "Search term"
// @Param org query string false "Organization id or ALL"
// @Param page query int false "1-based page"
// @Success 200 {object} resdto.RoomListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing principal"), "Unauthorized", nil)
		return
	}
	var q reqdto.RoomListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var date calendar.Date
	if q.Date != "" {
		d, err := calendar.ParseDate(q.Date)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		date = d
	}

	key := queries.NewRoomQueryKey(p, date, q.Search, q.Organization, q.Page)
	view, err := h.q.ListRooms(c.Request.Context(), key)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidRole) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "Insufficient permissions", nil)
			return
		}
		if errs.Is(err, queries.ErrOrganizationRequired) {
			httperr.AbortWithError(c, http.StatusForbidden, err, "No organization assigned", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load rooms", nil)
		return
	}

	middleware.AddLogAttrs(c,
		slog.String("strategy", string(view.Strategy)),
		slog.Bool("fell_back", view.FellBack),
		slog.Int("total", view.Total))

	res := resdto.FromRoomListView(view, h.images)
	res.SearchDebounceMs = h.opts.SearchDebounce.Milliseconds()
	c.JSON(http.StatusOK, res)
}

// @Summary List organizations
// @Description Organizations for the list filter, led by the ALL option
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrganizationResponse
// @Failure 401 {object} httperr.Response
// @Router /organizations [get]
func (h *RoomHandler) Organizations(c *gin.Context) {
	orgs, err := h.q.ListOrganizations(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load organizations", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizations(orgs))
}
