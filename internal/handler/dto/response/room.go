package response

import (
	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/pkg/patch"
	"roomboard/internal/usecase/listview"
	"roomboard/internal/usecase/queries"
)

const timeOfDayLayout = "15:04"

type RoomResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Capacity         int      `json:"capacity"`
	Location         string   `json:"location"`
	Floor            string   `json:"floor,omitempty"`
	Description      string   `json:"description,omitempty"`
	Amenities        []string `json:"amenities"`
	Equipment        []string `json:"equipment"`
	Images           []string `json:"images"`
	OrganizationID   string   `json:"organizationId"`
	OrganizationName string   `json:"organizationName,omitempty"`
}

func FromRoom(r room.Room) RoomResponse {
	return RoomResponse{
		ID:               r.ID.String(),
		Name:             r.Name,
		Capacity:         r.Capacity,
		Location:         r.Location,
		Floor:            r.Floor,
		Description:      r.Description,
		Amenities:        orEmpty(r.Amenities),
		Equipment:        orEmpty(r.Equipment),
		Images:           orEmpty(r.Images.SafePaths()),
		OrganizationID:   r.OrganizationID.String(),
		OrganizationName: patch.Coalesce(r.OrganizationName, ""),
	}
}

func FromRooms(rooms []room.Room) []RoomResponse {
	res := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		res[i] = FromRoom(r)
	}
	return res
}

type BookingCardResponse struct {
	UserName      string     `json:"userName"`
	UserEmail     string     `json:"userEmail"`
	Initials      string     `json:"initials"`
	AvatarURL     string     `json:"avatarUrl,omitempty"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Purpose       string     `json:"purpose"`
	Status        string     `json:"status"`
	Badge         room.Badge `json:"badge"`
	AttendeeCount *int       `json:"attendeeCount,omitempty"`
}

// RoomCardResponse is a room as rendered in the list and its detail view.
type RoomCardResponse struct {
	RoomResponse
	DisplayImageURL    string                `json:"displayImageUrl"`
	FallbackImageURL   string                `json:"fallbackImageUrl"`
	Slots              []room.SlotCell       `json:"slots,omitempty"`
	AvailableSlotCount *int                  `json:"availableSlotCount,omitempty"`
	Bookings           []BookingCardResponse `json:"bookings,omitempty"`
}

func FromRoomWithAvailability(r room.RoomWithAvailability, images room.ImageConfig, withAvailability bool) RoomCardResponse {
	card := RoomCardResponse{
		RoomResponse:     FromRoom(r.Room),
		DisplayImageURL:  images.DisplayImageURL(room.PrimaryImage(r.Room)),
		FallbackImageURL: images.FallbackImageURL(),
	}
	if !withAvailability {
		return card
	}
	card.Slots = room.SlotGrid(r.TimeSlots)
	n := room.AvailableSlotCount(r.TimeSlots)
	card.AvailableSlotCount = &n
	card.Bookings = make([]BookingCardResponse, len(r.TodaysBookings))
	for i, b := range r.TodaysBookings {
		card.Bookings[i] = fromBooking(b, images)
	}
	return card
}

func fromBooking(b room.BookingSummary, images room.ImageConfig) BookingCardResponse {
	res := BookingCardResponse{
		UserName:      b.UserName,
		UserEmail:     b.UserEmail,
		Initials:      room.Initials(b.UserName),
		StartTime:     b.StartTime.Format(timeOfDayLayout),
		EndTime:       b.EndTime.Format(timeOfDayLayout),
		Purpose:       b.Purpose,
		Status:        b.Status.String(),
		Badge:         room.StatusBadge(b.Status),
		AttendeeCount: b.AttendeeCount,
	}
	if b.UserProfilePicture != nil && *b.UserProfilePicture != "" {
		res.AvatarURL = images.DisplayImageURL(b.UserProfilePicture)
	}
	return res
}

type RoomListResponse struct {
	Rooms             []RoomCardResponse `json:"rooms"`
	Page              int                `json:"page"`
	TotalPages        int                `json:"totalPages"`
	Total             int                `json:"total"`
	PageSize          int                `json:"pageSize"`
	PrevPage          int                `json:"prevPage,omitempty"`
	NextPage          int                `json:"nextPage,omitempty"`
	Strategy          string             `json:"strategy"`
	AvailabilityKnown bool               `json:"availabilityKnown"`
	FellBack          bool               `json:"fellBack,omitempty"`
	Date              calendar.Date      `json:"date,omitzero"`
	Eligibility       string             `json:"eligibility,omitempty"`
	EmptyMessage      string             `json:"emptyMessage,omitempty"`
	SearchDebounceMs  int64              `json:"searchDebounceMs,omitempty"`
}

// FromRoomListView renders a list result. Previous and next pages are only
// set when navigation in that direction is possible.
func FromRoomListView(v *queries.RoomListView, images room.ImageConfig) RoomListResponse {
	res := RoomListResponse{
		Rooms:             make([]RoomCardResponse, len(v.Rooms)),
		Page:              v.Page,
		TotalPages:        v.TotalPages,
		Total:             v.Total,
		PageSize:          v.PageSize,
		Strategy:          string(v.Strategy),
		AvailabilityKnown: v.AvailabilityKnown,
		FellBack:          v.FellBack,
		Date:              v.Key.Date,
		EmptyMessage:      v.EmptyMessage,
	}
	if v.Eligibility.IsValid() {
		res.Eligibility = v.Eligibility.String()
	}
	for i, r := range v.Rooms {
		res.Rooms[i] = FromRoomWithAvailability(r, images, v.AvailabilityKnown)
	}

	pg := listview.NewPagination().WithTotalPages(v.TotalPages).SetPage(v.Page)
	if pg.HasPrevious() {
		res.PrevPage = pg.Previous().CurrentPage
	}
	if pg.HasNext() {
		res.NextPage = pg.Next().CurrentPage
	}
	return res
}

type OrganizationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FromOrganizations prepends the "all organizations" option.
func FromOrganizations(orgs []room.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, 0, len(orgs)+1)
	res = append(res, OrganizationResponse{ID: queries.OrganizationFilterAll, Name: "All Organizations"})
	for _, o := range orgs {
		res = append(res, OrganizationResponse{ID: o.ID.String(), Name: o.Name})
	}
	return res
}

type AvailabilityResponse struct {
	Date  calendar.Date      `json:"date"`
	Rooms []RoomCardResponse `json:"rooms"`
}

func FromAvailability(date calendar.Date, rows []room.RoomWithAvailability, images room.ImageConfig) AvailabilityResponse {
	res := AvailabilityResponse{Date: date, Rooms: make([]RoomCardResponse, len(rows))}
	for i, r := range rows {
		res.Rooms[i] = FromRoomWithAvailability(r, images, true)
	}
	return res
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
