package store

import "time"

// Clock supplies wall-clock time for new records. Injecting it keeps
// append timestamps testable.
type Clock interface {
	Now() time.Time
}

// systemClock is the default Clock, backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
