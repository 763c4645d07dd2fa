package listview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"roomboard/internal/domain/user"
	"roomboard/internal/pkg/clock"
	"roomboard/internal/usecase/queries"
)

// Session owns one State and carries out the effects Reduce asks for. Timer
// callbacks and fetch completions re-enter through Dispatch.
type Session struct {
	mu    sync.Mutex
	state State
	timer clock.Timer
	// inflight counts started fetches that have not reported back. It is
	// guarded by mu so timer-driven fetches can start while Wait blocks.
	inflight int
	idle     *sync.Cond

	ctx     context.Context
	queries queries.RoomQueries
	clock   clock.Clock
	logger  *slog.Logger
	onApply func(State)
}

type SessionOption func(*Session)

// WithObserver registers fn to receive every state after an event is applied.
func WithObserver(fn func(State)) SessionOption {
	return func(s *Session) { s.onApply = fn }
}

func NewSession(ctx context.Context, p user.Principal, q queries.RoomQueries, clk clock.Clock, quiet time.Duration, logger *slog.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		state:   NewState(p, quiet),
		ctx:     ctx,
		queries: q,
		clock:   clk,
		logger:  logger,
	}
	s.idle = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Type records a keystroke at the current clock time.
func (s *Session) Type(raw string) {
	s.Dispatch(SearchTyped{Raw: raw, At: s.clock.Now()})
}

func (s *Session) Dispatch(e Event) {
	s.mu.Lock()
	next, effect := Reduce(s.state, e)
	s.state = next
	if effect.Kind == EffectFetch {
		s.inflight++
	}
	observer := s.onApply
	s.mu.Unlock()

	if observer != nil {
		observer(next)
	}
	s.run(effect)
}

// Wait blocks until no fetch is in flight, including fetches started by a
// debounce commit while waiting.
func (s *Session) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.inflight > 0 {
		s.idle.Wait()
	}
}

// Close cancels a pending debounce commit.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) run(effect Effect) {
	switch effect.Kind {
	case EffectFetch:
		go func(seq uint64, key queries.RoomQueryKey) {
			defer s.fetchDone()
			view, err := s.queries.ListRooms(s.ctx, key)
			if err != nil {
				s.logger.WarnContext(s.ctx, "room list fetch failed", "key", key.String(), "seq", seq, "error", err)
				s.Dispatch(FetchFailed{Seq: seq, Key: key, Err: err})
				return
			}
			s.Dispatch(FetchResolved{Seq: seq, Key: key, View: view})
		}(effect.Seq, effect.Key)
	case EffectScheduleCommit:
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		delay := effect.At.Sub(s.clock.Now())
		s.timer = nil
		s.mu.Unlock()

		// AfterFunc may fire synchronously on a mock clock, so the lock is
		// not held here.
		t := s.clock.AfterFunc(delay, func() {
			s.Dispatch(DebounceElapsed{At: s.clock.Now()})
		})

		s.mu.Lock()
		if s.timer == nil {
			s.timer = t
		}
		s.mu.Unlock()
	}
}

func (s *Session) fetchDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		s.idle.Broadcast()
	}
}
