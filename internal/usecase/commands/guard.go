package commands

import (
	"sync"

	"github.com/google/uuid"
)

// SubmitGuard admits at most one in-flight submission per form instance.
// A form instance is identified by the submitting user and a form token.
type SubmitGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inFlight: make(map[string]struct{})}
}

// Acquire returns a release func, or ErrSubmitInProgress while another
// submission for the same form is running.
func (g *SubmitGuard) Acquire(userID uuid.UUID, formToken string) (func(), error) {
	if formToken == "" {
		return nil, ErrFormTokenRequired
	}
	key := userID.String() + ":" + formToken

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return nil, ErrSubmitInProgress
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, nil
}

func (g *SubmitGuard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}
