package room

import (
	"fmt"
	"time"

	"roomboard/internal/domain/calendar"
)

const SlotDuration = time.Hour

// BuildTimeSlots splits the business window of date into hourly slots. A slot
// is unavailable when an approved or pending booking overlaps it.
func BuildTimeSlots(date calendar.Date, bookings []BookingSummary, loc *time.Location) []TimeSlot {
	open, closeAt := calendar.BusinessWindow(date, loc)
	slots := make([]TimeSlot, 0, calendar.CloseHour-calendar.OpenHour)
	for start := open; start.Before(closeAt); start = start.Add(SlotDuration) {
		end := start.Add(SlotDuration)
		slots = append(slots, TimeSlot{
			StartTime:   start.Format("15:04"),
			IsAvailable: !overlapsAny(start, end, bookings),
		})
	}
	return slots
}

func overlapsAny(start, end time.Time, bookings []BookingSummary) bool {
	for _, b := range bookings {
		if !b.Status.Holds() {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			return true
		}
	}
	return false
}

type SlotCell struct {
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// SlotGrid labels each slot with its hour range. Slots whose start time cannot
// be parsed keep the raw value as label.
func SlotGrid(slots []TimeSlot) []SlotCell {
	cells := make([]SlotCell, len(slots))
	for i, s := range slots {
		label := s.StartTime
		if t, err := time.Parse("15:04", s.StartTime); err == nil {
			label = fmt.Sprintf("%s - %s", t.Format("15:04"), t.Add(SlotDuration).Format("15:04"))
		}
		cells[i] = SlotCell{Label: label, StartTime: s.StartTime, Available: s.IsAvailable}
	}
	return cells
}

func AvailableSlotCount(slots []TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.IsAvailable {
			n++
		}
	}
	return n
}
