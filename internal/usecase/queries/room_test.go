//go:build unit

package queries_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/domain/user"
	"roomboard/internal/pkg/clock"
	"roomboard/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomSource struct {
	mock.Mock
}

func (m *MockRoomSource) FetchAvailability(ctx context.Context, date calendar.Date) ([]room.RoomWithAvailability, error) {
	args := m.Called(ctx, date)
	rows, _ := args.Get(0).([]room.RoomWithAvailability)
	return rows, args.Error(1)
}

func (m *MockRoomSource) FetchAvailableInRange(ctx context.Context, start, end time.Time) ([]room.Room, error) {
	args := m.Called(ctx, start, end)
	rows, _ := args.Get(0).([]room.Room)
	return rows, args.Error(1)
}

func (m *MockRoomSource) FetchOrganizationRooms(ctx context.Context, organizationID uuid.UUID) ([]room.Room, error) {
	args := m.Called(ctx, organizationID)
	rows, _ := args.Get(0).([]room.Room)
	return rows, args.Error(1)
}

func (m *MockRoomSource) FetchAllRooms(ctx context.Context) ([]room.Room, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]room.Room)
	return rows, args.Error(1)
}

func (m *MockRoomSource) FetchOrganizations(ctx context.Context) ([]room.Organization, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]room.Organization)
	return rows, args.Error(1)
}

var (
	loc       = time.UTC
	monday    = calendar.NewDate(2024, time.June, 10)
	middayMon = monday.At(12, 0, loc)
	orgA      = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	orgB      = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func newQueries(src queries.RoomSource, now time.Time) queries.RoomQueries {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return queries.NewRoomQueries(src, clock.NewMockClock(now), loc, logger)
}

func makeRooms(n int, org uuid.UUID) []room.Room {
	rooms := make([]room.Room, n)
	for i := range rooms {
		rooms[i] = room.Room{
			ID:             uuid.New(),
			Name:           fmt.Sprintf("Room %02d", i+1),
			Location:       "Building A",
			Description:    "Standard meeting room",
			Capacity:       4 + i,
			OrganizationID: org,
		}
	}
	return rooms
}

func endUser() user.Principal  { return user.Principal{UserID: uuid.New(), Role: user.RoleUser} }
func sysAdmin() user.Principal { return user.Principal{UserID: uuid.New(), Role: user.RoleSystemAdmin} }
func orgAdmin(org uuid.UUID) user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleOrgAdmin, OrganizationID: &org}
}

func orgAdminWithoutOrg() user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleOrgAdmin}
}

func TestPlanFor(t *testing.T) {
	tests := []struct {
		name     string
		key      queries.RoomQueryKey
		now      time.Time
		primary  queries.Strategy
		fallback queries.Strategy
	}{
		{name: "user without date", key: queries.NewRoomQueryKey(endUser(), calendar.Date{}, "", "", 1), now: middayMon, primary: queries.StrategyNone},
		{name: "user with open date", key: queries.NewRoomQueryKey(endUser(), monday, "", "", 1), now: middayMon, primary: queries.StrategyAvailability},
		{name: "user before opening", key: queries.NewRoomQueryKey(endUser(), monday, "", "", 1), now: monday.At(6, 0, loc), primary: queries.StrategyAvailability},
		{name: "user after closing", key: queries.NewRoomQueryKey(endUser(), monday, "", "", 1), now: monday.At(17, 30, loc), primary: queries.StrategyClosed},
		{name: "user past date", key: queries.NewRoomQueryKey(endUser(), monday.AddDays(-7), "", "", 1), now: middayMon, primary: queries.StrategyClosed},
		{name: "user weekend", key: queries.NewRoomQueryKey(endUser(), monday.AddDays(5), "", "", 1), now: middayMon, primary: queries.StrategyAvailability},
		{name: "org admin without date", key: queries.NewRoomQueryKey(orgAdmin(orgA), calendar.Date{}, "", "", 1), now: middayMon, primary: queries.StrategyOrganizationListing},
		{name: "org admin with date", key: queries.NewRoomQueryKey(orgAdmin(orgA), monday, "", "", 1), now: middayMon, primary: queries.StrategyAvailableInRange, fallback: queries.StrategyOrganizationListing},
		{name: "system admin without date", key: queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "", "", 1), now: middayMon, primary: queries.StrategyGlobalListing},
		{name: "system admin with past date", key: queries.NewRoomQueryKey(sysAdmin(), monday.AddDays(-1), "", "", 1), now: middayMon, primary: queries.StrategyAvailableInRange, fallback: queries.StrategyGlobalListing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := queries.PlanFor(tt.key, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.primary, p.Primary)
			assert.Equal(t, tt.fallback, p.Fallback)
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		_, err := queries.PlanFor(queries.RoomQueryKey{Role: "guest"}, middayMon)
		assert.ErrorIs(t, err, queries.ErrInvalidRole)
	})

	t.Run("org admin without an organization", func(t *testing.T) {
		for _, date := range []calendar.Date{{}, monday} {
			_, err := queries.PlanFor(queries.NewRoomQueryKey(orgAdminWithoutOrg(), date, "", "", 1), middayMon)
			assert.ErrorIs(t, err, queries.ErrOrganizationRequired, "date %q", date)
		}
	})

	t.Run("identical keys give identical plans", func(t *testing.T) {
		k1 := queries.NewRoomQueryKey(orgAdmin(orgA), monday, "Board", "all", 0)
		k2 := queries.NewRoomQueryKey(orgAdmin(orgA), monday, "board", "ALL", 1)
		assert.Equal(t, k1, k2)
		p1, _ := queries.PlanFor(k1, middayMon)
		p2, _ := queries.PlanFor(k2, middayMon)
		assert.Equal(t, p1, p2)
	})
}

func TestListRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("end user without a date gets nothing and no fetch is issued", func(t *testing.T) {
		src := new(MockRoomSource)
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), calendar.Date{}, "", "", 1))
		require.NoError(t, err)

		assert.Empty(t, view.Rooms)
		assert.Equal(t, queries.StrategyNone, view.Strategy)
		assert.Equal(t, 1, view.TotalPages)
		assert.Equal(t, "Select a Day to See Available Rooms", view.EmptyMessage)
		src.AssertNotCalled(t, "FetchAvailability", mock.Anything, mock.Anything)
		src.AssertExpectations(t)
	})

	t.Run("end user with a past monday is empty regardless of the backend", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAvailability", mock.Anything, mock.Anything).
			Return(room.WithoutAvailability(makeRooms(3, orgA)), nil).Maybe()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), monday.AddDays(-7), "", "", 1))
		require.NoError(t, err)

		assert.Empty(t, view.Rooms)
		assert.Equal(t, calendar.Past, view.Eligibility)
		assert.Equal(t, "Past Date Selected", view.EmptyMessage)
		src.AssertNotCalled(t, "FetchAvailability", mock.Anything, mock.Anything)
	})

	t.Run("end user after closing time short-circuits", func(t *testing.T) {
		src := new(MockRoomSource)
		q := newQueries(src, monday.At(17, 1, loc))

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), monday, "", "", 1))
		require.NoError(t, err)

		assert.Equal(t, queries.StrategyClosed, view.Strategy)
		assert.Equal(t, calendar.AfterClose, view.Eligibility)
		assert.Equal(t, "Closed for the Day", view.EmptyMessage)
		src.AssertExpectations(t)
	})

	t.Run("end user with an open date lists availability", func(t *testing.T) {
		src := new(MockRoomSource)
		rows := room.WithoutAvailability(makeRooms(2, orgA))
		rows[0].TimeSlots = []room.TimeSlot{{StartTime: "07:00", IsAvailable: true}}
		src.On("FetchAvailability", mock.Anything, monday).Return(rows, nil).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), monday, "", "", 1))
		require.NoError(t, err)

		assert.Len(t, view.Rooms, 2)
		assert.True(t, view.AvailabilityKnown)
		assert.False(t, view.FellBack)
		assert.Equal(t, calendar.Open, view.Eligibility)
		assert.Empty(t, view.EmptyMessage)
		src.AssertExpectations(t)
	})

	t.Run("end user availability failure yields empty and never falls back", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAvailability", mock.Anything, monday).Return(nil, errors.New("boom")).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), monday, "", "", 1))
		require.NoError(t, err)

		assert.Empty(t, view.Rooms)
		assert.False(t, view.FellBack)
		assert.Equal(t, queries.StrategyAvailability, view.Strategy)
		src.AssertNotCalled(t, "FetchAllRooms", mock.Anything)
		src.AssertNotCalled(t, "FetchOrganizationRooms", mock.Anything, mock.Anything)
		src.AssertExpectations(t)
	})

	t.Run("org admin with a date queries the business window", func(t *testing.T) {
		src := new(MockRoomSource)
		start, end := monday.At(7, 0, loc), monday.At(17, 0, loc)
		src.On("FetchAvailableInRange", mock.Anything, start, end).
			Return(append(makeRooms(2, orgA), makeRooms(3, orgB)...), nil).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(orgAdmin(orgA), monday, "", "", 1))
		require.NoError(t, err)

		assert.Equal(t, 2, view.Total, "rooms of other organizations are out of scope")
		assert.False(t, view.AvailabilityKnown)
		src.AssertExpectations(t)
	})

	t.Run("org admin without an organization sees no rooms on either path", func(t *testing.T) {
		for _, date := range []calendar.Date{{}, monday} {
			src := new(MockRoomSource)
			q := newQueries(src, middayMon)

			view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(orgAdminWithoutOrg(), date, "", "", 1))
			assert.ErrorIs(t, err, queries.ErrOrganizationRequired)
			assert.Nil(t, view)
			src.AssertNotCalled(t, "FetchAvailableInRange", mock.Anything, mock.Anything, mock.Anything)
			src.AssertNotCalled(t, "FetchOrganizationRooms", mock.Anything, mock.Anything)
		}
	})

	t.Run("end user on a weekend still asks the store", func(t *testing.T) {
		saturday := monday.AddDays(5)
		src := new(MockRoomSource)
		src.On("FetchAvailability", mock.Anything, saturday).Return([]room.RoomWithAvailability{}, nil).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(endUser(), saturday, "", "", 1))
		require.NoError(t, err)

		assert.Equal(t, queries.StrategyAvailability, view.Strategy)
		assert.Equal(t, calendar.Weekend, view.Eligibility)
		assert.Equal(t, "Weekend Selected", view.EmptyMessage)
		src.AssertExpectations(t)
	})

	t.Run("org admin availability failure falls back to the organization listing", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAvailableInRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
		src.On("FetchOrganizationRooms", mock.Anything, orgA).Return(makeRooms(5, orgA), nil).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(orgAdmin(orgA), monday, "", "", 1))
		require.NoError(t, err)

		assert.Len(t, view.Rooms, 5)
		assert.True(t, view.FellBack)
		assert.False(t, view.AvailabilityKnown)
		assert.Equal(t, queries.StrategyOrganizationListing, view.Strategy)
		src.AssertExpectations(t)
	})

	t.Run("system admin fallback failure degrades to empty", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAvailableInRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()
		src.On("FetchAllRooms", mock.Anything).Return(nil, errors.New("still down")).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), monday, "", "", 1))
		require.NoError(t, err)

		assert.Empty(t, view.Rooms)
		assert.True(t, view.FellBack)
		assert.Equal(t, queries.StrategyGlobalListing, view.Strategy)
		src.AssertExpectations(t)
	})

	t.Run("system admin without date lists everything", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAllRooms", mock.Anything).Return(append(makeRooms(3, orgA), makeRooms(3, orgB)...), nil).Once()
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "", "", 1))
		require.NoError(t, err)

		assert.Equal(t, 6, view.Total)
		src.AssertExpectations(t)
	})

	t.Run("invalid role is an error", func(t *testing.T) {
		q := newQueries(new(MockRoomSource), middayMon)
		_, err := q.ListRooms(ctx, queries.RoomQueryKey{Role: "guest", Page: 1})
		assert.ErrorIs(t, err, queries.ErrInvalidRole)
	})
}

func TestListRoomsFilteringAndPagination(t *testing.T) {
	ctx := context.Background()

	t.Run("17 rooms paginate into 3 pages and out of range pages clamp", func(t *testing.T) {
		tests := []struct {
			page     int
			wantPage int
			wantLen  int
		}{
			{page: 0, wantPage: 1, wantLen: 8},
			{page: 1, wantPage: 1, wantLen: 8},
			{page: 2, wantPage: 2, wantLen: 8},
			{page: 3, wantPage: 3, wantLen: 1},
			{page: 4, wantPage: 3, wantLen: 1},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
				src := new(MockRoomSource)
				src.On("FetchAllRooms", mock.Anything).Return(makeRooms(17, orgA), nil).Once()
				q := newQueries(src, middayMon)

				view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "", "", tt.page))
				require.NoError(t, err)

				assert.Equal(t, 3, view.TotalPages)
				assert.Equal(t, 17, view.Total)
				assert.Equal(t, tt.wantPage, view.Page)
				assert.Len(t, view.Rooms, tt.wantLen)
			})
		}
	})

	t.Run("organization filter then search", func(t *testing.T) {
		rooms := append(makeRooms(3, orgA), makeRooms(3, orgB)...)
		rooms[0].Name = "Aquarium"
		rooms[4].Location = "aquarium wing"
		rooms[5].Description = "Next to the AQUARIUM"

		src := new(MockRoomSource)
		src.On("FetchAllRooms", mock.Anything).Return(rooms, nil)
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "aquarium", "", 1))
		require.NoError(t, err)
		assert.Equal(t, 3, view.Total)

		view, err = q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "Aquarium", orgB.String(), 1))
		require.NoError(t, err)
		assert.Equal(t, 2, view.Total)
		for _, r := range view.Rooms {
			assert.Equal(t, orgB, r.OrganizationID)
		}

		view, err = q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "nowhere", "", 1))
		require.NoError(t, err)
		assert.Equal(t, 0, view.Total)
		assert.Equal(t, 1, view.TotalPages)
		assert.Equal(t, "No Rooms Match Your Filters", view.EmptyMessage)
	})

	t.Run("search keeps surrounding whitespace", func(t *testing.T) {
		rooms := makeRooms(2, orgA)
		rooms[0].Name = "Main Hall"
		rooms[1].Name = "Hall of Mirrors"

		src := new(MockRoomSource)
		src.On("FetchAllRooms", mock.Anything).Return(rooms, nil)
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "hall ", "", 1))
		require.NoError(t, err)
		require.Equal(t, 1, view.Total)
		assert.Equal(t, "Hall of Mirrors", view.Rooms[0].Name)

		view, err = q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, "HALL", "", 1))
		require.NoError(t, err)
		assert.Equal(t, 2, view.Total)

		view, err = q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), calendar.Date{}, " main", "", 1))
		require.NoError(t, err)
		assert.Equal(t, 0, view.Total)
		assert.Equal(t, 1, view.TotalPages)
		assert.Equal(t, "No Rooms Match Your Filters", view.EmptyMessage)
	})

	t.Run("empty date scoped result uses the eligibility message", func(t *testing.T) {
		src := new(MockRoomSource)
		src.On("FetchAvailableInRange", mock.Anything, mock.Anything, mock.Anything).Return([]room.Room{}, nil)
		q := newQueries(src, middayMon)

		view, err := q.ListRooms(ctx, queries.NewRoomQueryKey(sysAdmin(), monday.AddDays(5), "", "", 1))
		require.NoError(t, err)
		assert.Equal(t, "Weekend Selected", view.EmptyMessage)
	})
}

func TestListOrganizations(t *testing.T) {
	ctx := context.Background()

	src := new(MockRoomSource)
	src.On("FetchOrganizations", mock.Anything).Return([]room.Organization{{ID: orgA, Name: "A"}}, nil).Once()
	q := newQueries(src, middayMon)
	orgs, err := q.ListOrganizations(ctx)
	require.NoError(t, err)
	assert.Len(t, orgs, 1)

	failing := new(MockRoomSource)
	failing.On("FetchOrganizations", mock.Anything).Return(nil, errors.New("down")).Once()
	orgs, err = newQueries(failing, middayMon).ListOrganizations(ctx)
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 1, queries.TotalPages(0, 8))
	assert.Equal(t, 1, queries.TotalPages(8, 8))
	assert.Equal(t, 2, queries.TotalPages(9, 8))
	assert.Equal(t, 3, queries.TotalPages(17, 8))

	assert.Equal(t, 1, queries.ClampPage(-3, 3))
	assert.Equal(t, 3, queries.ClampPage(99, 3))
	assert.Equal(t, 1, queries.ClampPage(2, 0))

	start, end := queries.PageBounds(3, 8, 17)
	assert.Equal(t, []int{16, 17}, []int{start, end})
	start, end = queries.PageBounds(5, 8, 17)
	assert.Equal(t, []int{17, 17}, []int{start, end})

	assert.Equal(t, []int{9, 10}, queries.Paginate([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 2, 8))
}
