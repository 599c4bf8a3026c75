package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one play-through of the reaction test: a fixed number of attempts
// and the elapsed times of the attempts that ended in a valid click.
type Session struct {
	ID             uuid.UUID       `json:"id"`
	AttemptLimit   int             `json:"attempt_limit"`
	CurrentAttempt int             `json:"current_attempt"` // 0-indexed
	Times          []time.Duration `json:"times"`
	StartedAt      time.Time       `json:"started_at"`
}

// NewSession returns a fresh session with no attempts made.
func NewSession(limit int, now time.Time) *Session {
	return &Session{
		ID:           uuid.New(),
		AttemptLimit: limit,
		StartedAt:    now,
	}
}

// Record stores a valid reaction time and advances to the next attempt.
func (s *Session) Record(d time.Duration) {
	if s.Done() {
		return
	}
	s.Times = append(s.Times, d)
	s.CurrentAttempt++
}

// Skip advances past an attempt that produced no time (early click or timeout).
func (s *Session) Skip() {
	if s.Done() {
		return
	}
	s.CurrentAttempt++
}

// Done reports whether every attempt has been used.
func (s *Session) Done() bool {
	return s.CurrentAttempt >= s.AttemptLimit
}

// Attempt is the 1-based attempt number shown to the player.
func (s *Session) Attempt() int {
	if s.Done() {
		return s.AttemptLimit
	}
	return s.CurrentAttempt + 1
}

// Stats summarizes the times recorded so far.
func (s *Session) Stats() (Stats, error) {
	return Summarize(s.Times)
}

// Clone returns a copy that shares no memory with s.
func (s *Session) Clone() Session {
	c := *s
	c.Times = append([]time.Duration(nil), s.Times...)
	return c
}
