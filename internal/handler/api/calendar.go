package api

import (
	"net/http"
	"time"

	"roomboard/internal/domain/calendar"
	reqdto "roomboard/internal/handler/dto/request"
	resdto "roomboard/internal/handler/dto/response"
	"roomboard/internal/handler/httperr"
	"roomboard/internal/pkg/clock"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	clock clock.Clock
	loc   *time.Location
}

func NewCalendarHandler(clk clock.Clock, loc *time.Location) *CalendarHandler {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarHandler{clock: clk, loc: loc}
}

// @Summary Month calendar
// @Description Six-week, Monday-first grid for the month containing date, with per-day booking eligibility
// @Tags calendar
// @Produce json
// @Param date query string false "Any day of the month to show (YYYY-MM-DD), defaults to today"
// @Param selected query string false "Currently selected day (YYYY-MM-DD)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	var q reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	now := h.clock.Now().In(h.loc)

	view := calendar.Today(now)
	if q.Date != "" {
		d, err := calendar.ParseDate(q.Date)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		view = d
	}
	var selected calendar.Date
	if q.Selected != "" {
		d, err := calendar.ParseDate(q.Selected)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid selected date", nil)
			return
		}
		selected = d
	}

	c.JSON(http.StatusOK, resdto.FromGrid(view, selected, now))
}
