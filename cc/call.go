// Package cc implements the Call Control protocol entity:
// the GAP call state machine that rides on one nwk/trans.Transaction
// per call, turning inbound NWK messages into MNCC-style indications
// and outbound primitives into NWK messages.
package cc

import (
	"fmt"

	"github.com/rob-gra/go-dect/lower"
	"github.com/rob-gra/go-dect/nwk"
	"github.com/rob-gra/go-dect/nwk/trans"
)

// State is a GAP Call Control state, EN 300 175-5 subclause 12 (the
// state machine is Q.931-derived; numeric values match the standard's
// own state numbers rather than a dense 0..N enumeration, which is why
// they are not contiguous).
type State uint8

const (
	StateNull                 State = 0
	StateCallInitiated        State = 1
	StateOverlapSending       State = 2
	StateOutgoingCallProc     State = 3
	StateCallDelivered        State = 4
	StateCallPresent          State = 6
	StateCallReceived         State = 7
	StateConnectRequest       State = 8
	StateIncomingCallProc     State = 9
	StateActive               State = 10
	StateDisconnectRequest    State = 11
	StateDisconnectIndication State = 12
	StateReleaseRequest       State = 19
	StateOverlapReceiving     State = 25
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "NULL"
	case StateCallInitiated:
		return "CALL-INITIATED"
	case StateOverlapSending:
		return "OVERLAP-SENDING"
	case StateOutgoingCallProc:
		return "OUTGOING-CALL-PROCEEDING"
	case StateCallDelivered:
		return "CALL-DELIVERED"
	case StateCallPresent:
		return "CALL-PRESENT"
	case StateCallReceived:
		return "CALL-RECEIVED"
	case StateConnectRequest:
		return "CONNECT-REQUEST"
	case StateIncomingCallProc:
		return "INCOMING-CALL-PROCEEDING"
	case StateActive:
		return "ACTIVE"
	case StateDisconnectRequest:
		return "DISCONNECT-REQUEST"
	case StateDisconnectIndication:
		return "DISCONNECT-INDICATION"
	case StateReleaseRequest:
		return "RELEASE-REQUEST"
	case StateOverlapReceiving:
		return "OVERLAP-RECEIVING"
	default:
		return fmt.Sprintf("STATE(%d)", uint8(s))
	}
}

// transitionAllowed is the per-state table of legal inbound message
// types, consulted on every delivery instead of a no-op guard: the
// original's equivalent check was defeated by a stray `;` that left its
// state guard unreachable. An event not present for the current state is
// simply ignored with ErrUnexpectedInState, mirroring the conservative
// GAP behaviour of discarding unexpected messages rather than tearing
// the call down.
var transitionAllowed = map[State]map[msgType]bool{
	StateNull:             {msgSetup: true},
	StateCallInitiated:    {msgSetupAck: true, msgCallProc: true, msgAlerting: true, msgConnect: true, msgRelease: true, msgReleaseCom: true},
	StateOverlapSending:   {msgCallProc: true, msgRelease: true, msgReleaseCom: true},
	StateOutgoingCallProc: {msgAlerting: true, msgConnect: true, msgRelease: true, msgReleaseCom: true},
	StateCallDelivered:    {msgConnect: true, msgRelease: true, msgReleaseCom: true},
	StateCallPresent:      {msgReleaseCom: true},
	StateCallReceived:     {msgRelease: true, msgReleaseCom: true},
	StateConnectRequest:   {msgConnectAck: true, msgRelease: true, msgReleaseCom: true},
	StateIncomingCallProc: {msgRelease: true, msgReleaseCom: true},
	StateActive:           {msgRelease: true, msgReleaseCom: true, msgServiceChange: true, msgServiceAccept: true, msgServiceReject: true, msgInfo: true, msgIwuInfo: true},
	StateDisconnectRequest:    {msgReleaseCom: true},
	StateDisconnectIndication: {msgRelease: true, msgReleaseCom: true},
	StateReleaseRequest:       {msgReleaseCom: true, msgRelease: true},
	StateOverlapReceiving:     {msgSetupAck: true, msgRelease: true, msgReleaseCom: true},
}

// ErrUnexpectedInState is returned (and logged, never panicked on) when
// a message arrives that transitionAllowed does not permit for the
// call's current state.
type ErrUnexpectedInState struct {
	State State
	Msg   msgType
}

func (e *ErrUnexpectedInState) Error() string {
	return fmt.Sprintf("cc: message %s unexpected in state %s", e.Msg, e.State)
}

// Call is one GAP call: its Transaction Layer binding, its current
// state, and the identifying/negotiated fields a PBX-style upper layer
// asks about.
type Call struct {
	tr    *trans.Transaction
	state State

	entity *Entity

	CalledNumber  string
	CallingNumber string
	BasicService  nwk.BasicService

	setupTimer   lower.Timer
	releaseTimer lower.Timer

	uplane *UPlane

	// released guards ReleaseRequest/ReleaseResponse/teardown against
	// running twice when both sides resolve a release collision
	// independently: each sees its own half of the exchange complete and
	// calls into teardown without waiting on the other.
	released bool
}

// State returns the call's current Call Control state.
func (c *Call) State() State { return c.state }

func (c *Call) setState(s State) {
	if c.entity.Log != nil {
		c.entity.Log.Debug("cc: call %v %s -> %s", c.tr.DebugID, c.state, s)
	}
	c.state = s
}

func (c *Call) checkTransition(m msgType) error {
	allowed := transitionAllowed[c.state]
	if allowed == nil || !allowed[m] {
		return &ErrUnexpectedInState{State: c.state, Msg: m}
	}
	return nil
}

func (c *Call) armSetupTimer() {
	if c.setupTimer == nil {
		return
	}
	c.setupTimer.Start(c.entity.config.SetupTimeout)
}

func (c *Call) stopSetupTimer() {
	if c.setupTimer != nil {
		c.setupTimer.Stop()
	}
}

// setupTimeout fires when the peer fails to answer SETUP within the
// configured window; it drives the call straight to release
// "every timer escalates to a RELEASE, never a silent drop" rule.
func (c *Call) setupTimeout(_ lower.Timer, _ interface{}) {
	_ = c.entity.ReleaseRequest(c, nwk.ReleaseTimer)
}
