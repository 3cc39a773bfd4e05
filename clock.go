package et

import "time"

// Clock provides the current time. Components that need the current time take
// a Clock, so tests can substitute a fixed one, see the ettest package.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the time from the operating system.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NowUTC returns the current time of clock in UTC. A nil clock uses [SystemClock].
func NowUTC(clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock
	}

	return clock.Now().UTC()
}
