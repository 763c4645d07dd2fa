//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/domain/user"
	"roomboard/internal/handler/api"
	resdto "roomboard/internal/handler/dto/response"
	"roomboard/internal/handler/middleware"
	"roomboard/internal/infra/postgres"
	"roomboard/internal/pkg/errs"
	"roomboard/internal/usecase/commands"
	"roomboard/tests/common/builder"
	"roomboard/tests/common/httptest"
	"roomboard/tests/common/testutil"
	commandsmock "roomboard/tests/mock/commands"
	queriesmock "roomboard/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomStoreHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockSource   *queriesmock.MockRoomSource
	mockCommands *commandsmock.MockRoomCommands
	principal    user.Principal
	orgID        uuid.UUID
}

func (s *RoomStoreHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSource = queriesmock.NewMockRoomSource(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.orgID = uuid.New()
	s.principal = user.Principal{UserID: uuid.New(), Role: user.RoleOrgAdmin, OrganizationID: &s.orgID}

	h := api.NewRoomStoreHandler(s.mockSource, s.mockCommands, testImages)
	auth := fakeAuth(&s.principal)
	s.router.GET("/room/availability", auth, h.Availability)
	s.router.GET("/room/available", auth, h.AvailableInRange)
	s.router.GET("/room/all", auth, h.All)
	s.router.GET("/room/organization", auth, h.Organization)
	s.router.POST("/room", auth, h.Create)
	s.router.PUT("/room/:id", auth, h.Update)
	s.router.DELETE("/room/:id", auth, h.Delete)
}

func (s *RoomStoreHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomStoreHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomStoreHandlerTestSuite))
}

func formToken(token string) map[string]string {
	return map[string]string{middleware.FormTokenHeader: token}
}

type testCaseCommandError struct {
	name         string
	err          error
	expectCode   int
	expectInBody string
}

func commandErrorCases() []testCaseCommandError {
	return []testCaseCommandError{
		{
			name:         "double submit",
			err:          commands.ErrSubmitInProgress,
			expectCode:   http.StatusConflict,
			expectInBody: commands.SubmitInProgressMessage,
		},
		{
			name:         "field validation",
			err:          room.RoomDraft{}.Validate(),
			expectCode:   http.StatusBadRequest,
			expectInBody: "Room name is required",
		},
		{
			name:         "missing form token",
			err:          commands.ErrFormTokenRequired,
			expectCode:   http.StatusBadRequest,
			expectInBody: "Form token required",
		},
		{
			name:         "other organization",
			err:          commands.ErrForbiddenOrganization,
			expectCode:   http.StatusForbidden,
			expectInBody: "Insufficient permissions",
		},
		{
			name:         "room gone",
			err:          errs.Mark(errors.New("no rows"), commands.ErrRoomNotFound),
			expectCode:   http.StatusNotFound,
			expectInBody: "Room not found",
		},
		{
			name:         "backend message shown verbatim",
			err:          errs.WithUserMessage(errors.New("duplicate key"), postgres.DuplicateRoomMessage),
			expectCode:   http.StatusConflict,
			expectInBody: postgres.DuplicateRoomMessage,
		},
		{
			name:         "unexpected failure uses the generic message",
			err:          errors.New("connection reset"),
			expectCode:   http.StatusInternalServerError,
			expectInBody: commands.SaveFailedMessage,
		},
	}
}

// ================================================================================
// Writes
// ================================================================================

func (s *RoomStoreHandlerTestSuite) TestCreate() {
	url := "/room"
	rb := builder.NewRoomBuilder()
	reqBody := rb.BuildSaveRequestDTO()

	s.Run("success: returns 201 with the stored room", func() {
		created := rb.BuildDomain()
		s.mockCommands.EXPECT().CreateRoom(gomock.Any(), s.principal, gomock.Any()).
			DoAndReturn(func(_ any, _ user.Principal, in commands.SaveRoomInput) (*room.Room, error) {
				s.Equal("form-1", in.FormToken)
				s.Equal("Atlas", in.Draft.Name)
				s.Equal([]string{"/uploads/rooms/atlas.png"}, in.Draft.NewImageFiles)
				return &created, nil
			}).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, formToken("form-1"), "bearer-token")
		var res resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(created.ID.String(), res.ID)
		s.Equal([]string{"/uploads/rooms/atlas.png"}, res.Images)
		s.Equal("Acme", res.OrganizationName)
	})

	s.Run("error: body that is not a room", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("capacity", "eight"))
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, formToken("form-1"), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	for _, tc := range commandErrorCases() {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().CreateRoom(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, formToken("form-1"), "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
		})
	}
}

func (s *RoomStoreHandlerTestSuite) TestUpdate() {
	rb := builder.NewRoomBuilder()
	reqBody := rb.BuildSaveRequestDTO()
	url := "/room/" + rb.ID.String()

	s.Run("success: returns the updated room", func() {
		updated := rb.BuildDomain()
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), s.principal, rb.ID, gomock.Any()).Return(&updated, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url, reqBody, formToken("form-2"), "bearer-token")
		var res resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(rb.ID.String(), res.ID)
	})

	s.Run("error: invalid id", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, "/room/not-a-uuid", reqBody, formToken("form-2"), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	for _, tc := range commandErrorCases() {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), gomock.Any(), rb.ID, gomock.Any()).Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPut, url, reqBody, formToken("form-2"), "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
		})
	}
}

func (s *RoomStoreHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/room/" + id.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().DeleteRoom(gomock.Any(), s.principal, "form-3", id).Return(nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, url, nil, formToken("form-3"), "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: generic failure uses the delete message", func() {
		s.mockCommands.EXPECT().DeleteRoom(gomock.Any(), gomock.Any(), gomock.Any(), id).Return(errors.New("boom")).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, url, nil, formToken("form-3"), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, commands.DeleteFailedMessage)
	})

	s.Run("error: double submit", func() {
		s.mockCommands.EXPECT().DeleteRoom(gomock.Any(), gomock.Any(), gomock.Any(), id).Return(commands.ErrSubmitInProgress).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodDelete, url, nil, formToken("form-3"), "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, commands.SubmitInProgressMessage)
	})
}

// ================================================================================
// Reads
// ================================================================================

func (s *RoomStoreHandlerTestSuite) TestAvailability() {
	monday := calendar.NewDate(2024, time.June, 10)

	s.Run("success: every slot is listed", func() {
		row := builder.NewRoomBuilder().BuildWithAvailability(monday, time.UTC)
		s.mockSource.EXPECT().FetchAvailability(gomock.Any(), monday).Return([]room.RoomWithAvailability{row}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/room/availability?date=2024-06-10", nil, "bearer-token")
		var res resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(monday, res.Date)
		s.Require().Len(res.Rooms, 1)
		s.Require().NotNil(res.Rooms[0].AvailableSlotCount)
		s.Equal(10, *res.Rooms[0].AvailableSlotCount)
	})

	s.Run("error: date is required", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/room/availability", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})
}

func (s *RoomStoreHandlerTestSuite) TestAvailableInRange() {
	start := time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)

	s.Run("success: passes the parsed range through", func() {
		s.mockSource.EXPECT().FetchAvailableInRange(gomock.Any(), start, end).
			Return([]room.Room{builder.NewRoomBuilder().BuildDomain()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/room/available?start=2024-06-10T07:00:00Z&end=2024-06-10T17:00:00Z", nil, "bearer-token")
		var res []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Len(res, 1)
	})

	cases := []struct {
		name string
		url  string
	}{
		{name: "missing end", url: "/room/available?start=2024-06-10T07:00:00Z"},
		{name: "bad start", url: "/room/available?start=07:00&end=2024-06-10T17:00:00Z"},
		{name: "inverted range", url: "/room/available?start=2024-06-10T17:00:00Z&end=2024-06-10T07:00:00Z"},
	}
	for _, tc := range cases {
		s.Run("error: "+tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "bearer-token")
			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
}

func (s *RoomStoreHandlerTestSuite) TestOrganization() {
	s.Run("success: scoped to the caller's organization", func() {
		s.mockSource.EXPECT().FetchOrganizationRooms(gomock.Any(), s.orgID).Return([]room.Room{}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/room/organization", nil, "bearer-token")
		var res []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res)
	})

	s.Run("error: caller without an organization", func() {
		s.principal.OrganizationID = nil
		defer func() { s.principal.OrganizationID = &s.orgID }()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/room/organization", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "No organization assigned")
	})
}

func (s *RoomStoreHandlerTestSuite) TestAll() {
	s.mockSource.EXPECT().FetchAllRooms(gomock.Any()).Return(nil, errors.New("db down")).Times(1)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/room/all", nil, "bearer-token")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load rooms")
}
