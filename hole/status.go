package hole

import (
	"errors"
	"fmt"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Status -trimprefix=Status

// Status is the lifecycle state of a round.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusWon
	StatusLost
)

// ErrIllegalTransition is returned when a status change is not allowed.
var ErrIllegalTransition = errors.New("illegal status transition")

var transitions = map[Status][]Status{
	StatusRunning: {StatusPaused, StatusWon, StatusLost},
	StatusPaused:  {StatusRunning},
	StatusWon:     {StatusRunning},
	StatusLost:    {StatusRunning},
}

// Terminal reports whether the round is over.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// CanTransition reports whether a round may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s *Session) transition(next Status) error {
	if !s.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// TogglePause flips between Running and Paused.
func (s *Session) TogglePause() error {
	if s.Status == StatusPaused {
		return s.transition(StatusRunning)
	}
	return s.transition(StatusPaused)
}
