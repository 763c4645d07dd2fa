//go:build e2e

package room_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/user"
	"roomboard/internal/handler/dto/request"
	"roomboard/internal/handler/dto/response"
	"roomboard/internal/handler/middleware"
	"roomboard/internal/infra/postgres"
	"roomboard/internal/usecase/queries"
	"roomboard/tests/common/authtest"
	"roomboard/tests/common/dbtest"
	"roomboard/tests/common/httptest"
	"roomboard/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	roomsURL        = "/api/rooms"
	roomStoreURL    = "/api/room"
	roomURL         = "/api/room/%s"
	organizationURL = "/api/room/organization"
	allRoomsURL     = "/api/room/all"
)

type RoomSuite struct {
	e2e.SharedSuite
}

func (s *RoomSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestRoomSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RoomSuite))
}

// nextBookableDay is a weekday at least a week out, so the test never lands
// on a past, weekend or closed day.
func nextBookableDay() calendar.Date {
	d := calendar.Today(time.Now().UTC()).AddDays(7)
	for d.IsWeekend() {
		d = d.AddDays(1)
	}
	return d
}

type fixture struct {
	orgID      uuid.UUID
	otherOrgID uuid.UUID
	bookedID   uuid.UUID
	freeID     uuid.UUID
	day        calendar.Date
}

func (s *RoomSuite) seed(t *testing.T) fixture {
	t.Helper()
	f := fixture{day: nextBookableDay()}
	f.orgID = dbtest.CreateTestOrganization(t, s.DB, "Acme")
	f.otherOrgID = dbtest.CreateTestOrganization(t, s.DB, "Globex")
	booker := dbtest.CreateTestUser(t, s.DB, "Ada Lovelace", "ada@example.com", string(user.RoleUser), &f.orgID)

	f.bookedID = dbtest.CreateTestRoom(t, s.DB, f.orgID, "Atlas", 8, "North Wing")
	f.freeID = dbtest.CreateTestRoom(t, s.DB, f.otherOrgID, "Borealis", 4, "South Wing")

	start := f.day.At(9, 0, time.UTC)
	dbtest.CreateTestBooking(t, s.DB, f.bookedID, booker, start, start.Add(time.Hour), "APPROVED")
	// rejected bookings never block a slot
	dbtest.CreateTestBooking(t, s.DB, f.freeID, booker, start, start.Add(time.Hour), "REJECTED")
	return f
}

func (s *RoomSuite) tokens() *authtest.JWTHelper {
	return authtest.NewJWTHelper(s.Config.JWT)
}

// =============================================================================
// TestListRooms - role-specific room list
// =============================================================================

func (s *RoomSuite) TestListRooms() {
	s.Run("End user sees slot availability for the selected day", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.UserPrincipal())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"?date="+f.day.String(), nil, token)
		var res response.RoomListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)

		require.Equal(t, string(queries.StrategyAvailability), res.Strategy)
		require.True(t, res.AvailabilityKnown)
		require.Len(t, res.Rooms, 2)

		byName := map[string]response.RoomCardResponse{}
		for _, r := range res.Rooms {
			byName[r.Name] = r
		}
		atlas := byName["Atlas"]
		require.NotNil(t, atlas.AvailableSlotCount)
		require.Equal(t, calendar.CloseHour-calendar.OpenHour-1, *atlas.AvailableSlotCount)
		require.Len(t, atlas.Bookings, 1)
		require.Equal(t, "AL", atlas.Bookings[0].Initials)
		require.Equal(t, "Confirmed", atlas.Bookings[0].Badge.Label)
		require.Equal(t, "https://media.test/uploads/atlas.png", atlas.DisplayImageURL)

		borealis := byName["Borealis"]
		require.NotNil(t, borealis.AvailableSlotCount)
		require.Equal(t, calendar.CloseHour-calendar.OpenHour, *borealis.AvailableSlotCount)
	})

	s.Run("End user without a day is asked to pick one", func() {
		t := s.T()
		s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.UserPrincipal())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL, nil, token)
		var res response.RoomListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Empty(t, res.Rooms)
		require.Equal(t, "Select a Day to See Available Rooms", res.EmptyMessage)
	})

	s.Run("System admin with a day sees only rooms free during business hours", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.SystemAdminPrincipal())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"?date="+f.day.String(), nil, token)
		var res response.RoomListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, string(queries.StrategyAvailableInRange), res.Strategy)
		require.False(t, res.AvailabilityKnown)

		names := make([]string, len(res.Rooms))
		for i, r := range res.Rooms {
			names[i] = r.Name
		}
		if diff := cmp.Diff([]string{"Borealis"}, names); diff != "" {
			t.Errorf("rooms mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Org admin listing stays inside their organization and honors search", func() {
		t := s.T()
		f := s.seed(t)
		dbtest.CreateTestRoom(t, s.DB, f.orgID, "Cassini", 12, "Roof Terrace")
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL, nil, token)
		var all response.RoomListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &all)
		require.Equal(t, string(queries.StrategyOrganizationListing), all.Strategy)
		require.Equal(t, 2, all.Total)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"?q=ROOF", nil, token)
		var searched response.RoomListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &searched)
		require.Len(t, searched.Rooms, 1)
		require.Equal(t, "Cassini", searched.Rooms[0].Name)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, roomsURL+"?q=terrace%20", nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &searched)
		require.Zero(t, searched.Total)
	})

	s.Run("Org admin token without an organization is rejected", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, user.Principal{UserID: uuid.New(), Role: user.RoleOrgAdmin})

		for _, url := range []string{roomsURL, roomsURL + "?date=" + f.day.String()} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
			httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
		}
	})
}

// =============================================================================
// TestRoomEditor - admin create/update/delete
// =============================================================================

func (s *RoomSuite) TestRoomEditor() {
	s.Run("Org admin creates, updates and deletes a room", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))
		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}

		body := request.SaveRoomRequest{
			Name:          "  Drake  ",
			Capacity:      6,
			Location:      "East Wing",
			Amenities:     []string{"Wifi", " "},
			NewImageFiles: []string{"/uploads/drake-1.png"},
		}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, roomStoreURL, body, headers, token)
		var created response.RoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "Drake", created.Name)
		require.Equal(t, f.orgID.String(), created.OrganizationID)

		body.NewImageFiles = []string{"/uploads/drake-2.png"}
		body.Capacity = 10
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPut, fmt.Sprintf(roomURL, created.ID), body, headers, token)
		var updated response.RoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)

		want := response.RoomResponse{
			ID:             created.ID,
			Name:           "Drake",
			Capacity:       10,
			Location:       "East Wing",
			Amenities:      []string{"Wifi"},
			Equipment:      []string{},
			Images:         []string{"/uploads/drake-1.png", "/uploads/drake-2.png"},
			OrganizationID: f.orgID.String(),
		}
		if diff := cmp.Diff(want, updated, cmpopts.IgnoreFields(response.RoomResponse{}, "OrganizationName")); diff != "" {
			t.Errorf("updated room mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, organizationURL, nil, token)
		var own []response.RoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &own)
		require.Len(t, own, 2)

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodDelete, fmt.Sprintf(roomURL, created.ID), nil, headers, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.False(t, dbtest.RoomExists(t, s.DB, uuid.MustParse(created.ID)))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodDelete, fmt.Sprintf(roomURL, created.ID), nil, headers, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Room not found")
	})

	s.Run("Mutations invalidate cached listings", func() {
		t := s.T()
		f := s.seed(t)
		sysToken := s.tokens().GenerateToken(t, authtest.SystemAdminPrincipal())
		orgToken := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))

		var before []response.RoomResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, allRoomsURL, nil, sysToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &before)
		require.Len(t, before, 2)

		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}
		body := request.SaveRoomRequest{Name: "Eos", Capacity: 2, Location: "Lobby"}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, roomStoreURL, body, headers, orgToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var after []response.RoomResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, allRoomsURL, nil, sysToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &after)
		require.Len(t, after, 3)
	})

	s.Run("Duplicate name surfaces the store message", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))
		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}

		body := request.SaveRoomRequest{Name: "Atlas", Capacity: 3, Location: "Annex"}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, roomStoreURL, body, headers, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, postgres.DuplicateRoomMessage)
	})

	s.Run("Invalid drafts report every field", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))
		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, roomStoreURL, request.SaveRoomRequest{}, headers, token)
		body := httptest.AssertValidationResponse(t, w, "name", "location")
		require.Equal(t, "Room name is required", body.Detail["name"])
	})

	s.Run("Org admin cannot edit another organization's room", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))
		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}

		body := request.SaveRoomRequest{Name: "Borealis", Capacity: 4, Location: "South Wing"}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPut, fmt.Sprintf(roomURL, f.freeID), body, headers, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Mutations without a form token are rejected", func() {
		t := s.T()
		f := s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.OrgAdminPrincipal(f.orgID))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(roomURL, f.bookedID), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Form token required")
	})

	s.Run("End users cannot reach the editor", func() {
		t := s.T()
		s.seed(t)
		token := s.tokens().GenerateToken(t, authtest.UserPrincipal())
		headers := map[string]string{middleware.FormTokenHeader: uuid.NewString()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, roomStoreURL,
			request.SaveRoomRequest{Name: "X", Capacity: 1, Location: "Y"}, headers, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
