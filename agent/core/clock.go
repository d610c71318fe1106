package core

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock { return &RealClock{} }

func (c *RealClock) Now() time.Time { return time.Now() }

// Since is time.Since on an injectable clock.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
