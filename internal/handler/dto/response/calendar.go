package response

import (
	"time"

	"roomboard/internal/domain/calendar"
)

type CalendarCellResponse struct {
	Date           calendar.Date `json:"date"`
	Day            int           `json:"day"`
	InCurrentMonth bool          `json:"inCurrentMonth"`
	Eligibility    string        `json:"eligibility"`
	Disabled       bool          `json:"disabled"`
	IsToday        bool          `json:"isToday"`
	IsSelected     bool          `json:"isSelected"`
}

type CalendarResponse struct {
	Year      int                      `json:"year"`
	Month     int                      `json:"month"`
	MonthName string                   `json:"monthName"`
	Today     calendar.Date            `json:"today"`
	Selected  calendar.Date            `json:"selected,omitzero"`
	PrevMonth calendar.Date            `json:"prevMonth"`
	NextMonth calendar.Date            `json:"nextMonth"`
	Weeks     [][]CalendarCellResponse `json:"weeks"`
}

// FromGrid renders the month grid of view relative to now. A cell is
// disabled unless it is selectable.
func FromGrid(view, selected calendar.Date, now time.Time) CalendarResponse {
	today := calendar.Today(now)
	res := CalendarResponse{
		Year:      view.Year,
		Month:     int(view.Month),
		MonthName: view.Month.String(),
		Today:     today,
		Selected:  selected,
		PrevMonth: view.AddMonths(-1),
		NextMonth: view.AddMonths(1),
		Weeks:     make([][]CalendarCellResponse, 0, calendar.WeeksPerGrid),
	}
	for _, week := range calendar.BuildGrid(view) {
		row := make([]CalendarCellResponse, 0, calendar.DaysPerWeek)
		for _, cell := range week {
			row = append(row, CalendarCellResponse{
				Date:           cell.Date,
				Day:            cell.Date.Day,
				InCurrentMonth: cell.InCurrentMonth,
				Eligibility:    calendar.Classify(cell.Date, now).String(),
				Disabled:       !calendar.IsSelectable(cell, now),
				IsToday:        cell.Date == today,
				IsSelected:     !selected.IsZero() && cell.Date == selected,
			})
		}
		res.Weeks = append(res.Weeks, row)
	}
	return res
}
