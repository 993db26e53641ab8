package generation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Generating
)

func (s State) String() string {
	if s == Generating {
		return "generating"
	}
	return "idle"
}

// Session tracks whether a generation is in flight and owns its cancellation
// signal. The zero value is an idle session.
type Session struct {
	mu      sync.Mutex
	state   State
	id      string
	cancel  context.CancelFunc
	stopped bool
}

// Start moves Idle to Generating and returns a context that is cancelled by
// Stop. It returns false and does nothing if a generation is already running.
func (s *Session) Start(parent context.Context) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Generating {
		return nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	s.state = Generating
	s.id = uuid.NewString()
	s.cancel = cancel
	s.stopped = false
	return ctx, true
}

// Stop raises the cancellation signal of the running generation. It does not
// change the state. It reports whether this call raised the signal; calls
// while idle or after the first Stop are no-ops.
func (s *Session) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Generating || s.stopped {
		return false
	}
	s.stopped = true
	s.cancel()
	return true
}

// Reset returns the session to Idle and disposes the signal.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.state = Idle
	s.cancel = nil
	s.stopped = false
	s.id = ""
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) IsGenerating() bool { return s.State() == Generating }

// Stopped reports whether Stop was called during the current generation.
func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// ID identifies the current generation in logs. Empty while idle.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}
