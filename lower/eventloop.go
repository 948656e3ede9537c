package lower

// FDEvent is the set of readiness conditions an EventLoop can report.
type FDEvent uint8

const (
	FDEventRead FDEvent = 1 << iota
	FDEventWrite
)

// FD is an opaque handle to a file descriptor registered with an
// EventLoop; implementations may embed a trailing private area sized by
// EventLoop.FDPrivSize.
type FD interface {
	Fd() int
}

// EventLoop is the file-descriptor readiness multiplexer the core runs
// on top of. The core never blocks: every socket it owns is
// registered here and driven by callbacks dispatched from the loop's own
// goroutine/thread.
type EventLoop interface {
	RegisterFD(fd FD, events FDEvent, cb func(fd FD, events FDEvent)) error
	UnregisterFD(fd FD) error

	RegisterTimer(t Timer) error
	UnregisterTimer(t Timer) error

	// FDPrivSize and TimerPrivSize report the size in bytes of the
	// trailing private area the loop implementation reserves past each
	// handle, for allocator plug-ins that want a single allocation.
	FDPrivSize() int
	TimerPrivSize() int
}
