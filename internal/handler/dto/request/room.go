package request

import (
	"roomboard/internal/domain/room"
	"roomboard/internal/usecase/commands"

	"github.com/google/uuid"
)

// SaveRoomRequest is the body of both room create and room update. Field
// rules live in room.RoomDraft so the messages match the form.
type SaveRoomRequest struct {
	Name           string     `json:"name"`
	Capacity       int        `json:"capacity"`
	Location       string     `json:"location"`
	Floor          string     `json:"floor"`
	Description    string     `json:"description"`
	Amenities      []string   `json:"amenities"`
	Equipment      []string   `json:"equipment"`
	NewImageFiles  []string   `json:"newImageFiles" binding:"omitempty,dive,max=1024"`
	OrganizationID *uuid.UUID `json:"organizationId,omitempty"`
}

func (r SaveRoomRequest) ToInput(formToken string) commands.SaveRoomInput {
	return commands.SaveRoomInput{
		FormToken: formToken,
		Draft: room.RoomDraft{
			Name:          r.Name,
			Capacity:      r.Capacity,
			Location:      r.Location,
			Floor:         r.Floor,
			Description:   r.Description,
			Amenities:     r.Amenities,
			Equipment:     r.Equipment,
			NewImageFiles: r.NewImageFiles,
		},
		OrganizationID: r.OrganizationID,
	}
}

// RoomListQuery is bound from the query string of the room list.
type RoomListQuery struct {
	Date         string `form:"date"`
	Search       string `form:"q"`
	Organization string `form:"org"`
	Page         int    `form:"page"`
}

type CalendarQuery struct {
	Date     string `form:"date"`
	Selected string `form:"selected"`
}

type AvailableRangeQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
