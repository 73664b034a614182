package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
// Implementations return local wall-clock time: schedule math is done
// against the host's calendar day.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Timers arms one-shot callbacks. It exists so schedulers can be driven by a
// fake clock in tests instead of the runtime timer wheel.
type Timers interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type SystemTimers struct{}

func (SystemTimers) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
