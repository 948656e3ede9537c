package lower

import "time"

// Timer is the external timer-service handle used for the CC setup and
// release-guard timers. The core allocates one per use,
// arms it with Start, and Frees it synchronously once no longer needed.
type Timer interface {
	Setup(cb func(t Timer, data interface{}), data interface{})
	Start(timeout time.Duration)
	Stop()
	Running() bool
	Free()
}

// TimerService allocates Timer handles. Implementations plug into an
// EventLoop to actually fire callbacks.
type TimerService interface {
	Alloc() Timer
}
