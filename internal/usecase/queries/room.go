package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/domain/user"
	"roomboard/internal/pkg/clock"
	"roomboard/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=room.go -destination=../../../tests/mock/queries/room.go -package=queriesmock

const OrganizationFilterAll = "ALL"

var (
	ErrInvalidRole = errs.New("role cannot list rooms")
	// ErrOrganizationRequired rejects an org admin that administers no
	// organization.
	ErrOrganizationRequired = errs.New("org admin has no organization")
)

// RoomSource is the backing store contract.
type RoomSource interface {
	FetchAvailability(ctx context.Context, date calendar.Date) ([]room.RoomWithAvailability, error)
	FetchAvailableInRange(ctx context.Context, start, end time.Time) ([]room.Room, error)
	FetchOrganizationRooms(ctx context.Context, organizationID uuid.UUID) ([]room.Room, error)
	FetchAllRooms(ctx context.Context) ([]room.Room, error)
	FetchOrganizations(ctx context.Context) ([]room.Organization, error)
}

type RoomQueries interface {
	ListRooms(ctx context.Context, key RoomQueryKey) (*RoomListView, error)
	ListOrganizations(ctx context.Context) ([]room.Organization, error)
}

// RoomQueryKey identifies a room list. Equal keys always pick the same
// strategy and, barring backend changes, the same rows.
type RoomQueryKey struct {
	Role               user.Role
	Search             string
	Page               int
	Date               calendar.Date
	OrganizationFilter string
	// OrganizationScope is the organization an org admin administers.
	OrganizationScope uuid.UUID
}

func NewRoomQueryKey(p user.Principal, date calendar.Date, search, organizationFilter string, page int) RoomQueryKey {
	if page < 1 {
		page = 1
	}
	return RoomQueryKey{
		Role:               p.Role,
		Search:             NormalizeSearch(search),
		Page:               page,
		Date:               date,
		OrganizationFilter: NormalizeOrganizationFilter(organizationFilter),
		OrganizationScope:  p.OrganizationScope(),
	}
}

// NormalizeSearch only folds case. Surrounding whitespace is part of the
// term, so "hall " does not match "Main Hall".
func NormalizeSearch(s string) string {
	return strings.ToLower(s)
}

func NormalizeOrganizationFilter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, OrganizationFilterAll) {
		return OrganizationFilterAll
	}
	return s
}

func (k RoomQueryKey) HasDate() bool {
	return !k.Date.IsZero()
}

func (k RoomQueryKey) String() string {
	return fmt.Sprintf("role=%s|scope=%s|date=%s|org=%s|q=%s|page=%d",
		k.Role, k.OrganizationScope, k.Date, k.OrganizationFilter, k.Search, k.Page)
}

type Strategy string

const (
	// StrategyNone asks the user to pick a day; nothing is fetched.
	StrategyNone Strategy = "none"
	// StrategyClosed means the picked day cannot be booked; nothing is fetched.
	StrategyClosed              Strategy = "closed"
	StrategyAvailability        Strategy = "availability"
	StrategyAvailableInRange    Strategy = "available_in_range"
	StrategyOrganizationListing Strategy = "organization_listing"
	StrategyGlobalListing       Strategy = "global_listing"
)

func (s Strategy) Fetches() bool {
	return s != StrategyNone && s != StrategyClosed
}

type Plan struct {
	Primary     Strategy
	Fallback    Strategy
	Eligibility calendar.Eligibility
}

// PlanFor picks the fetch strategy for key. End users never fall back to an
// unscoped listing; admins do when the date-scoped fetch fails.
func PlanFor(key RoomQueryKey, now time.Time) (Plan, error) {
	var p Plan
	if key.HasDate() {
		p.Eligibility = calendar.Classify(key.Date, now)
	}

	switch key.Role {
	case user.RoleUser:
		switch {
		case !key.HasDate():
			p.Primary = StrategyNone
		case p.Eligibility == calendar.Past, p.Eligibility == calendar.AfterClose:
			p.Primary = StrategyClosed
		default:
			p.Primary = StrategyAvailability
		}
	case user.RoleOrgAdmin:
		if key.OrganizationScope == uuid.Nil {
			return Plan{}, ErrOrganizationRequired
		}
		p.Primary = StrategyOrganizationListing
		if key.HasDate() {
			p.Primary, p.Fallback = StrategyAvailableInRange, StrategyOrganizationListing
		}
	case user.RoleSystemAdmin:
		p.Primary = StrategyGlobalListing
		if key.HasDate() {
			p.Primary, p.Fallback = StrategyAvailableInRange, StrategyGlobalListing
		}
	default:
		return Plan{}, ErrInvalidRole
	}
	return p, nil
}

type RoomListView struct {
	Key      RoomQueryKey
	Strategy Strategy
	// AvailabilityKnown is false whenever rows came from a fetch without
	// per-slot data, including the admin fallback listing.
	AvailabilityKnown bool
	FellBack          bool
	Eligibility       calendar.Eligibility
	Rooms             []room.RoomWithAvailability
	Total             int
	Page              int
	TotalPages        int
	PageSize          int
	EmptyMessage      string
}

type roomQueriesImpl struct {
	source RoomSource
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger
}

func NewRoomQueries(source RoomSource, clk clock.Clock, loc *time.Location, logger *slog.Logger) RoomQueries {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &roomQueriesImpl{source: source, clock: clk, loc: loc, logger: logger}
}

func (q *roomQueriesImpl) ListRooms(ctx context.Context, key RoomQueryKey) (*RoomListView, error) {
	now := q.clock.Now().In(q.loc)
	plan, err := PlanFor(key, now)
	if err != nil {
		return nil, err
	}

	view := &RoomListView{
		Key:         key,
		Strategy:    plan.Primary,
		Eligibility: plan.Eligibility,
		PageSize:    PageSize,
	}

	var rows []room.RoomWithAvailability
	if plan.Primary.Fetches() {
		rows, view.AvailabilityKnown, err = q.fetch(ctx, plan.Primary, key)
		if err != nil {
			q.logger.WarnContext(ctx, "room fetch failed",
				"strategy", string(plan.Primary), "key", key.String(), "error", err)
			rows, view.AvailabilityKnown = nil, false
			if plan.Fallback != "" {
				view.Strategy, view.FellBack = plan.Fallback, true
				rows, _, err = q.fetch(ctx, plan.Fallback, key)
				if err != nil {
					q.logger.ErrorContext(ctx, "fallback room fetch failed",
						"strategy", string(plan.Fallback), "key", key.String(), "error", err)
					rows = nil
				}
			}
		}
	}

	scoped := scopeToOrganization(rows, key)
	filtered := FilterRooms(scoped, key.OrganizationFilter, key.Search)

	view.Total = len(filtered)
	view.TotalPages = TotalPages(view.Total, PageSize)
	view.Page = ClampPage(key.Page, view.TotalPages)
	view.Rooms = Paginate(filtered, view.Page, PageSize)
	if view.Rooms == nil {
		view.Rooms = []room.RoomWithAvailability{}
	}
	if view.Total == 0 {
		view.EmptyMessage = emptyMessage(key, view, len(scoped))
	}
	return view, nil
}

func (q *roomQueriesImpl) ListOrganizations(ctx context.Context) ([]room.Organization, error) {
	orgs, err := q.source.FetchOrganizations(ctx)
	if err != nil {
		q.logger.WarnContext(ctx, "organization fetch failed", "error", err)
		return []room.Organization{}, nil
	}
	return orgs, nil
}

func (q *roomQueriesImpl) fetch(ctx context.Context, s Strategy, key RoomQueryKey) ([]room.RoomWithAvailability, bool, error) {
	switch s {
	case StrategyAvailability:
		rows, err := q.source.FetchAvailability(ctx, key.Date)
		return rows, true, err
	case StrategyAvailableInRange:
		start, end := calendar.BusinessWindow(key.Date, q.loc)
		rows, err := q.source.FetchAvailableInRange(ctx, start, end)
		return room.WithoutAvailability(rows), false, err
	case StrategyOrganizationListing:
		rows, err := q.source.FetchOrganizationRooms(ctx, key.OrganizationScope)
		return room.WithoutAvailability(rows), false, err
	case StrategyGlobalListing:
		rows, err := q.source.FetchAllRooms(ctx)
		return room.WithoutAvailability(rows), false, err
	default:
		return nil, false, nil
	}
}

// scopeToOrganization keeps an org admin inside their own organization even
// when the backing fetch is not organization-aware. An org admin without an
// organization sees nothing.
func scopeToOrganization(rows []room.RoomWithAvailability, key RoomQueryKey) []room.RoomWithAvailability {
	if key.Role != user.RoleOrgAdmin {
		return rows
	}
	if key.OrganizationScope == uuid.Nil {
		return []room.RoomWithAvailability{}
	}
	out := make([]room.RoomWithAvailability, 0, len(rows))
	for _, r := range rows {
		if r.OrganizationID == key.OrganizationScope {
			out = append(out, r)
		}
	}
	return out
}

// FilterRooms applies the organization filter, then a case-insensitive
// substring match of search over name, location and description.
func FilterRooms(rows []room.RoomWithAvailability, organizationFilter, search string) []room.RoomWithAvailability {
	organizationFilter = NormalizeOrganizationFilter(organizationFilter)
	search = NormalizeSearch(search)

	out := make([]room.RoomWithAvailability, 0, len(rows))
	for _, r := range rows {
		if organizationFilter != OrganizationFilterAll && r.OrganizationID.String() != strings.ToLower(organizationFilter) {
			continue
		}
		if search != "" && !matchesSearch(r.Room, search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r room.Room, term string) bool {
	for _, field := range []string{r.Name, r.Location, r.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func emptyMessage(key RoomQueryKey, view *RoomListView, unfiltered int) string {
	switch {
	case view.Strategy == StrategyNone:
		return "Select a Day to See Available Rooms"
	case unfiltered > 0:
		return "No Rooms Match Your Filters"
	case key.HasDate():
		return view.Eligibility.EmptyMessage()
	default:
		return "No Rooms Found"
	}
}
