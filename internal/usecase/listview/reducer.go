package listview

import (
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/user"
	"roomboard/internal/usecase/queries"
)

type State struct {
	Principal          user.Principal
	Date               calendar.Date
	Search             Debounce
	OrganizationFilter string
	Pagination         Pagination
	// View is the last result applied for the current key.
	View    *queries.RoomListView
	Loading bool
	// Seq numbers the latest fetch issued. Only its result is applied.
	Seq uint64
	// Discarded counts fetch results dropped because a newer fetch was issued.
	Discarded int
}

func NewState(p user.Principal, quiet time.Duration) State {
	return State{
		Principal:          p,
		Search:             NewDebounce(quiet),
		OrganizationFilter: queries.OrganizationFilterAll,
		Pagination:         NewPagination(),
	}
}

func (s State) Key() queries.RoomQueryKey {
	return queries.NewRoomQueryKey(s.Principal, s.Date, s.Search.Committed, s.OrganizationFilter, s.Pagination.CurrentPage)
}

type Event interface {
	isEvent()
}

type (
	// Refresh re-issues the fetch for the current key.
	Refresh       struct{}
	DaySelected   struct{ Date calendar.Date }
	DayCleared    struct{}
	SearchTyped   struct {
		Raw string
		At  time.Time
	}
	DebounceElapsed           struct{ At time.Time }
	OrganizationFilterChanged struct{ Filter string }
	PageRequested             struct{ Page int }
	NextPage                  struct{}
	PreviousPage              struct{}
	FetchResolved             struct {
		Seq  uint64
		Key  queries.RoomQueryKey
		View *queries.RoomListView
	}
	FetchFailed struct {
		Seq uint64
		Key queries.RoomQueryKey
		Err error
	}
)

func (Refresh) isEvent()                   {}
func (DaySelected) isEvent()               {}
func (DayCleared) isEvent()                {}
func (SearchTyped) isEvent()               {}
func (DebounceElapsed) isEvent()           {}
func (OrganizationFilterChanged) isEvent() {}
func (PageRequested) isEvent()             {}
func (NextPage) isEvent()                  {}
func (PreviousPage) isEvent()              {}
func (FetchResolved) isEvent()             {}
func (FetchFailed) isEvent()               {}

type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectFetch asks the owner to list rooms for Key and report back with
	// FetchResolved or FetchFailed carrying the same Seq.
	EffectFetch
	// EffectScheduleCommit asks the owner to deliver DebounceElapsed at At,
	// replacing any earlier schedule.
	EffectScheduleCommit
)

type Effect struct {
	Kind EffectKind
	Seq  uint64
	Key  queries.RoomQueryKey
	At   time.Time
}

// Reduce is pure: it never performs I/O and never reads the clock.
func Reduce(s State, e Event) (State, Effect) {
	prev := s.Key()

	switch ev := e.(type) {
	case Refresh:
		return s.fetch()
	case DaySelected:
		s.Date = ev.Date
	case DayCleared:
		s.Date = calendar.Date{}
	case SearchTyped:
		s.Search = s.Search.Input(ev.Raw, ev.At)
		return s, Effect{Kind: EffectScheduleCommit, At: s.Search.Deadline}
	case DebounceElapsed:
		var changed bool
		s.Search, changed = s.Search.Elapse(ev.At)
		if changed {
			s.Pagination = s.Pagination.Reset()
		}
	case OrganizationFilterChanged:
		s.OrganizationFilter = queries.NormalizeOrganizationFilter(ev.Filter)
	case PageRequested:
		s.Pagination = s.Pagination.SetPage(ev.Page)
	case NextPage:
		s.Pagination = s.Pagination.Next()
	case PreviousPage:
		s.Pagination = s.Pagination.Previous()
	case FetchResolved:
		if s.stale(ev.Seq, ev.Key) || ev.View == nil {
			s.Discarded++
			return s, Effect{}
		}
		s.View = ev.View
		s.Loading = false
		s.Pagination = s.Pagination.WithTotalPages(ev.View.TotalPages)
		return s, Effect{}
	case FetchFailed:
		if s.stale(ev.Seq, ev.Key) {
			s.Discarded++
			return s, Effect{}
		}
		s.View = nil
		s.Loading = false
		return s, Effect{}
	}

	if s.Key() == prev {
		return s, Effect{}
	}
	return s.fetch()
}

func (s State) fetch() (State, Effect) {
	s.Loading = true
	s.Seq++
	return s, Effect{Kind: EffectFetch, Seq: s.Seq, Key: s.Key()}
}

// stale reports whether a result belongs to anything but the latest fetch.
// Keys alone are not enough: after A, B, A the first A response carries the
// current key but an older sequence number.
func (s State) stale(seq uint64, key queries.RoomQueryKey) bool {
	return seq != s.Seq || key != s.Key()
}
