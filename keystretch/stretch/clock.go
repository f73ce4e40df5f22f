package stretch

import "time"

// Clock is a monotonic time source. Readings are only meaningful relative to
// each other.
type Clock interface {
	Now() (time.Duration, error)
}

type monotonicClock struct {
	origin time.Time
}

// SystemClock returns a Clock backed by the runtime's monotonic clock, which is
// not affected by wall-clock adjustments.
func SystemClock() Clock {
	return monotonicClock{origin: time.Now()}
}

func (c monotonicClock) Now() (time.Duration, error) {
	return time.Since(c.origin), nil
}
