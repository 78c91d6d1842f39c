// Package session implements the client-local reservation hold: a
// time-bounded claim on one slot between selection and confirmation.
// A hold is purely advisory — the slot registry is only touched by the
// single commit attempt at confirmation, so an expired or cancelled
// session leaves server state untouched. Holds never block or queue.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultHold is the decision window granted on selection. It matches
// the five-minute countdown of the booking page.
const DefaultHold = 300 * time.Second

// Status enumerates the reservation session states.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusExpired   Status = "EXPIRED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// ErrNotActive is returned when Confirm is called on a session that has
// already expired, been cancelled or been confirmed.
var ErrNotActive = errors.New("reservation session is not active")

// CommitFunc is the registry commit invoked once at confirmation. It is
// expected to report repository.ErrSlotBooked when the slot was taken by
// another booker and repository.ErrSlotNotFound when the slot vanished.
type CommitFunc func(ctx context.Context, slotID, userID uint64, parkingHours int) error

// Session is a single reservation hold. It is owned by one client and
// must not be shared; all state transitions are serialized internally so
// the expiry timer and user actions cannot race.
type Session struct {
	mu        sync.Mutex
	slotID    uint64
	startedAt time.Time
	expiresAt time.Time
	status    Status
	// confirming blocks the expiry transition while a commit attempt is
	// in flight, so a timer that fired just before Confirm stopped it
	// cannot expire the session mid-commit.
	confirming bool
	timer      *time.Timer
	commit     CommitFunc
	onExpire   func(slotID uint64)
}

func (s *Session) SlotID() uint64       { return s.slotID }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Status returns the current session state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Remaining reports how much of the decision window is left. It is
// zero once the session has left the Active state.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return 0
	}
	if d := time.Until(s.expiresAt); d > 0 {
		return d
	}
	return 0
}

// expire is the timer callback. It only fires the transition when the
// session is still Active; a cancel or confirm that won the race makes
// it a no-op.
func (s *Session) expire() {
	s.mu.Lock()
	if s.status != StatusActive || s.confirming {
		s.mu.Unlock()
		return
	}
	s.status = StatusExpired
	cb := s.onExpire
	s.mu.Unlock()
	if cb != nil {
		cb(s.slotID)
	}
}

// Cancel moves an Active session to Cancelled and stops its timer.
// Cancelling a session that already left the Active state is a no-op,
// so callers can cancel unconditionally on navigation.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return
	}
	s.status = StatusCancelled
	s.timer.Stop()
}

// Confirm performs the single commit attempt against the registry. The
// timer is stopped first so expiry cannot fire mid-commit. On success
// the session becomes Confirmed; on any commit failure it becomes
// Cancelled and the error is returned for the caller to surface — the
// registry reported either a lost race, a vanished slot or a storage
// failure, and in every case the client returns to the unselected state.
// There are no retries: a conflict is terminal for this attempt.
func (s *Session) Confirm(ctx context.Context, userID uint64, parkingHours int) error {
	s.mu.Lock()
	if s.status != StatusActive {
		s.mu.Unlock()
		return ErrNotActive
	}
	s.timer.Stop()
	s.confirming = true
	commit := s.commit
	slotID := s.slotID
	s.mu.Unlock()

	err := commit(ctx, slotID, userID, parkingHours)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusCancelled
		return err
	}
	s.status = StatusConfirmed
	return nil
}

// Manager enforces the one-Active-session-per-client rule. Selecting a
// slot implicitly cancels whatever was previously held.
type Manager struct {
	mu       sync.Mutex
	hold     time.Duration
	commit   CommitFunc
	onExpire func(slotID uint64)
	active   *Session
}

// Option customizes a Manager.
type Option func(*Manager)

// WithHold overrides the decision window, mainly for tests.
func WithHold(d time.Duration) Option {
	return func(m *Manager) { m.hold = d }
}

// WithOnExpire registers a callback invoked when a session expires on
// its own; the UI uses it to return to the unselected state.
func WithOnExpire(cb func(slotID uint64)) Option {
	return func(m *Manager) { m.onExpire = cb }
}

// NewManager builds a Manager committing through the given function.
func NewManager(commit CommitFunc, opts ...Option) *Manager {
	m := &Manager{hold: DefaultHold, commit: commit}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Select starts a new Active session for slotID, cancelling any prior
// Active session first. The countdown starts immediately.
func (m *Manager) Select(slotID uint64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Cancel()
	}
	now := time.Now().UTC()
	s := &Session{
		slotID:    slotID,
		startedAt: now,
		expiresAt: now.Add(m.hold),
		status:    StatusActive,
		commit:    m.commit,
		onExpire:  m.onExpire,
	}
	s.timer = time.AfterFunc(m.hold, s.expire)
	m.active = s
	return s
}

// Active returns the current session, which may be nil or no longer in
// the Active state.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Clear cancels and forgets the current session, if any.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.active.Cancel()
		m.active = nil
	}
}
