package calendar

import (
	"fmt"
	"time"
)

// Business hours, local wall-clock time, Monday to Friday.
const (
	OpenHour  = 7
	CloseHour = 17
)

type Eligibility int

const (
	Past Eligibility = iota + 1
	Weekend
	BeforeOpen
	AfterClose
	Open
)

var eligibilityNames = map[Eligibility]string{
	Past:       "past",
	Weekend:    "weekend",
	BeforeOpen: "before_open",
	AfterClose: "after_close",
	Open:       "open",
}

func (e Eligibility) String() string {
	if s, ok := eligibilityNames[e]; ok {
		return s
	}
	return fmt.Sprintf("eligibility(%d)", int(e))
}

func (e Eligibility) IsValid() bool {
	_, ok := eligibilityNames[e]
	return ok
}

func (e Eligibility) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// EmptyMessage is the headline shown when a date-scoped room list comes back empty.
func (e Eligibility) EmptyMessage() string {
	switch e {
	case Past:
		return "Past Date Selected"
	case Weekend:
		return "Weekend Selected"
	case BeforeOpen:
		return "Booking Opens at 07:00"
	case AfterClose:
		return "Closed for the Day"
	default:
		return "No Rooms Available"
	}
}

// Classify places date relative to now. Rules are checked in order: past,
// weekend, today after 17:00, today before 07:00, otherwise open. now's
// location is the single local timezone the service runs in.
func Classify(date Date, now time.Time) Eligibility {
	today := DateOf(now)
	switch {
	case date.Before(today):
		return Past
	case date.IsWeekend():
		return Weekend
	case date == today && now.Hour() >= CloseHour:
		return AfterClose
	case date == today && now.Hour() < OpenHour:
		return BeforeOpen
	default:
		return Open
	}
}

// IsSelectable reports whether a calendar cell may be picked. Cells outside
// the displayed month are never selectable.
func IsSelectable(cell Cell, now time.Time) bool {
	return cell.InCurrentMonth && Classify(cell.Date, now) == Open
}

// BusinessWindow returns the bookable window of date in loc.
func BusinessWindow(date Date, loc *time.Location) (time.Time, time.Time) {
	return date.At(OpenHour, 0, loc), date.At(CloseHour, 0, loc)
}

func Today(now time.Time) Date {
	return DateOf(now)
}
