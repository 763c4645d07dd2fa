//go:build unit || e2e

package builder

import (
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	reqdto "roomboard/internal/handler/dto/request"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID               uuid.UUID
	Name             string
	Capacity         int
	Location         string
	Floor            string
	Description      string
	Amenities        []string
	Equipment        []string
	Images           []string
	OrganizationID   uuid.UUID
	OrganizationName string
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:               uuid.New(),
		Name:             "Atlas",
		Capacity:         8,
		Location:         "North Wing",
		Floor:            "3",
		Description:      "Corner room with a view",
		Amenities:        []string{"Wifi", "Whiteboard"},
		Equipment:        []string{"Projector"},
		Images:           []string{"/uploads/rooms/atlas.png"},
		OrganizationID:   uuid.New(),
		OrganizationName: "Acme",
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) BuildDomain() room.Room {
	orgName := b.OrganizationName
	return room.Room{
		ID:               b.ID,
		Name:             b.Name,
		Capacity:         b.Capacity,
		Location:         b.Location,
		Floor:            b.Floor,
		Description:      b.Description,
		Amenities:        append([]string{}, b.Amenities...),
		Equipment:        append([]string{}, b.Equipment...),
		Images:           room.NewImageList(b.Images),
		OrganizationID:   b.OrganizationID,
		OrganizationName: &orgName,
	}
}

// BuildWithAvailability gives the room a slot grid for date built from
// bookings.
func (b *RoomBuilder) BuildWithAvailability(date calendar.Date, loc *time.Location, bookings ...room.BookingSummary) room.RoomWithAvailability {
	return room.RoomWithAvailability{
		Room:           b.BuildDomain(),
		TimeSlots:      room.BuildTimeSlots(date, bookings, loc),
		TodaysBookings: bookings,
	}
}

func (b *RoomBuilder) BuildSaveRequestDTO() reqdto.SaveRoomRequest {
	orgID := b.OrganizationID
	return reqdto.SaveRoomRequest{
		Name:           b.Name,
		Capacity:       b.Capacity,
		Location:       b.Location,
		Floor:          b.Floor,
		Description:    b.Description,
		Amenities:      append([]string{}, b.Amenities...),
		Equipment:      append([]string{}, b.Equipment...),
		NewImageFiles:  append([]string{}, b.Images...),
		OrganizationID: &orgID,
	}
}

type BookingBuilder struct {
	UserName  string
	UserEmail string
	Start     time.Time
	End       time.Time
	Purpose   string
	Status    room.BookingStatus
}

func NewBookingBuilder(date calendar.Date, loc *time.Location) *BookingBuilder {
	return &BookingBuilder{
		UserName:  "Ada Lovelace",
		UserEmail: "ada@example.com",
		Start:     date.At(9, 0, loc),
		End:       date.At(10, 0, loc),
		Purpose:   "Standup",
		Status:    room.BookingApproved,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Build() room.BookingSummary {
	return room.BookingSummary{
		UserName:  b.UserName,
		UserEmail: b.UserEmail,
		StartTime: b.Start,
		EndTime:   b.End,
		Purpose:   b.Purpose,
		Status:    b.Status,
	}
}
