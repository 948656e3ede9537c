package cc

import (
	"time"

	"github.com/rob-gra/go-dect/lower"
)

// releaseGuardWindow bounds how long a call waits for RELEASE-COM after
// this side sent RELEASE before tearing down the transaction anyway.
const releaseGuardWindow = 5 * time.Second

// timer.go holds the CC entity's timer wiring: the setup-class timer in
// call.go, and here the post-RELEASE guard window covering the case
// where the peer never answers with RELEASE-COM at all (link loss, or a
// release collision where the peer's own teardown already ran and it
// has nothing left to send back).

// armReleaseTimer starts the short guard window after this side sends
// RELEASE, covering the "release collision" edge case: both sides
// releasing concurrently is not an error, each side's own Release call
// already handles its half independently, and this timer exists only to
// bound how long a call waits for a RELEASE-COM that will now never come.
func (c *Call) armReleaseTimer(timers lower.TimerService, onExpiry func(lower.Timer, interface{})) {
	if timers == nil {
		return
	}
	if c.releaseTimer == nil {
		c.releaseTimer = timers.Alloc()
		c.releaseTimer.Setup(onExpiry, nil)
	}
	c.releaseTimer.Start(releaseGuardWindow)
}

func (c *Call) stopReleaseTimer() {
	if c.releaseTimer != nil {
		c.releaseTimer.Stop()
	}
}

// releaseTimeout fires when releaseGuardWindow elapses with no
// RELEASE-COM back; the call is torn down unconditionally, delivering a
// release confirmation rather than leaving the application waiting on a
// reply that will now never come.
func (c *Call) releaseTimeout(_ lower.Timer, _ interface{}) {
	c.entity.notify(Indication{Kind: IndReleaseCfm, Call: c})
	c.entity.teardown(c)
}
