package room

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingApproved BookingStatus = "APPROVED"
	BookingPending  BookingStatus = "PENDING"
	BookingRejected BookingStatus = "REJECTED"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingApproved, BookingPending, BookingRejected:
		return true
	default:
		return false
	}
}

// Holds reports whether a booking in this status blocks its time range.
func (s BookingStatus) Holds() bool {
	return s == BookingApproved || s == BookingPending
}

type Organization struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Room is owned by the backing store and read-only to everything else.
// Images is kept in its stored encoding; see ImageList.
type Room struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Capacity         int       `json:"capacity"`
	Location         string    `json:"location"`
	Floor            string    `json:"floor"`
	Description      string    `json:"description"`
	Amenities        []string  `json:"amenities"`
	Equipment        []string  `json:"equipment"`
	Images           ImageList `json:"images"`
	OrganizationID   uuid.UUID `json:"organizationId"`
	OrganizationName *string   `json:"organizationName,omitempty"`
}

type TimeSlot struct {
	StartTime   string `json:"startTime"`
	IsAvailable bool   `json:"isAvailable"`
}

type BookingSummary struct {
	UserName           string        `json:"userName"`
	UserEmail          string        `json:"userEmail"`
	UserProfilePicture *string       `json:"userProfilePicture,omitempty"`
	StartTime          time.Time     `json:"startTime"`
	EndTime            time.Time     `json:"endTime"`
	Purpose            string        `json:"purpose"`
	Status             BookingStatus `json:"status"`
	AttendeeCount      *int          `json:"attendeeCount,omitempty"`
}

// RoomWithAvailability carries slot and booking data only when it came from
// a date-scoped fetch.
type RoomWithAvailability struct {
	Room
	TimeSlots      []TimeSlot       `json:"timeSlots,omitempty"`
	TodaysBookings []BookingSummary `json:"todaysBookings,omitempty"`
}

func WithoutAvailability(rooms []Room) []RoomWithAvailability {
	out := make([]RoomWithAvailability, len(rooms))
	for i, r := range rooms {
		out[i] = RoomWithAvailability{Room: r}
	}
	return out
}
