package service

import "time"

// Clock is the single source of wall-clock time for a run.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the real clock.
func NewSystemClock() Clock {
	return SystemClock{}
}
