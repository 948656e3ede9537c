package cc

import (
	"fmt"

	"github.com/rob-gra/go-dect/config"
	"github.com/rob-gra/go-dect/internal/dlog"
	"github.com/rob-gra/go-dect/lower"
	"github.com/rob-gra/go-dect/nwk"
	"github.com/rob-gra/go-dect/nwk/trans"
)

// msgType names a CC message type octet for readable trace logging and
// the transitionAllowed table; the wire values are nwk's own
// MsgCC* constants, kept in one place so the descriptor tables and this
// state machine can never drift apart.
type msgType uint8

const (
	msgSetup         = msgType(nwk.MsgCCSetup)
	msgCallProc      = msgType(nwk.MsgCCCallProc)
	msgSetupAck      = msgType(nwk.MsgCCSetupAck)
	msgAlerting      = msgType(nwk.MsgCCAlerting)
	msgConnect       = msgType(nwk.MsgCCConnect)
	msgConnectAck    = msgType(nwk.MsgCCConnectAck)
	msgRelease       = msgType(nwk.MsgCCRelease)
	msgReleaseCom    = msgType(nwk.MsgCCReleaseCom)
	msgServiceChange = msgType(nwk.MsgCCServiceChange)
	msgServiceAccept = msgType(nwk.MsgCCServiceAccept)
	msgServiceReject = msgType(nwk.MsgCCServiceReject)
	msgInfo          = msgType(nwk.MsgCCInfo)
	msgIwuInfo       = msgType(nwk.MsgCCIwuInfo)
)

var msgTypeNames = map[msgType]string{
	msgSetup: "SETUP", msgCallProc: "CALL-PROC", msgSetupAck: "SETUP-ACK",
	msgAlerting: "ALERTING", msgConnect: "CONNECT", msgConnectAck: "CONNECT-ACK",
	msgRelease: "RELEASE", msgReleaseCom: "RELEASE-COM",
	msgServiceChange: "SERVICE-CHANGE", msgServiceAccept: "SERVICE-ACCEPT",
	msgServiceReject: "SERVICE-REJECT", msgInfo: "INFO", msgIwuInfo: "IWU-INFO",
}

func (m msgType) String() string {
	if n, ok := msgTypeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("MSG(0x%02x)", uint8(m))
}

// IndicationKind names the upper-layer (MNCC-equivalent) event an Entity
// delivers for one call. A real PBX integration would carry a richer
// payload per indication kind; this mirrors "MNCC primitives are
// out of scope beyond naming them" boundary by keeping the indication
// generic and letting Listener type-switch on Kind.
type IndicationKind uint8

const (
	IndSetup IndicationKind = iota
	IndSetupAck
	IndCallProc
	IndAlerting
	IndConnect
	IndConnectAck
	IndRelease
	IndReleaseCom
	IndReject
	IndReleaseCfm
	IndServiceChange
	IndServiceChangeAccept
	IndServiceChangeReject
	IndInfo
	IndIwuInfo
	IndDlUData
)

// Indication is delivered to a Listener for every inbound CC event.
// Data carries the U-plane payload for IndDlUData and is unset for
// every other kind.
type Indication struct {
	Kind IndicationKind
	Call *Call
	IEs  []nwk.ParsedIE
	Data []byte
}

// Listener receives CC indications; a PBX/softphone integration
// implements this to drive its own call model.
type Listener interface {
	CCIndication(Indication)
}

// Entity is the Call Control protocol entity: one per NWK handle,
// binding a trans.Dispatcher to a transaction table sized by
// config.HandleConfig.MaxTransactionsCC, and fanning inbound events out
// to a Listener. It implements trans.Protocol.
type Entity struct {
	config   *config.HandleConfig
	disp     *trans.Dispatcher
	table    *trans.Table
	timers   lower.TimerService
	listener Listener
	Log      *dlog.Logger

	calls map[*trans.Transaction]*Call
}

// NewEntity builds a CC Entity bound to disp, registering its
// descriptor tables and transaction table capacity.
func NewEntity(cfg *config.HandleConfig, disp *trans.Dispatcher, timers lower.TimerService, listener Listener, log *dlog.Logger) *Entity {
	e := &Entity{
		config:   cfg,
		disp:     disp,
		timers:   timers,
		listener: listener,
		Log:      log,
		calls:    make(map[*trans.Transaction]*Call),
	}
	e.table = disp.Register(e, cfg.MaxTransactionsCC, nwk.CCDescriptors())
	return e
}

var _ trans.Protocol = (*Entity)(nil)

func (e *Entity) Discriminator() trans.ProtocolDiscriminator { return trans.PDCallControl }

// Open handles a message that establishes a new transaction: in
// practice, only an inbound SETUP is legal here,
// everything else is a protocol error the Transaction Layer should never
// have routed here as a fresh transaction.
func (e *Entity) Open(tr *trans.Transaction, msgTypeOctet uint8, ies []nwk.ParsedIE) error {
	mt := msgType(msgTypeOctet)
	if mt != msgSetup {
		return &ErrUnexpectedInState{State: StateNull, Msg: mt}
	}
	call := e.newCall(tr)
	call.setState(StateCallPresent)
	e.notify(Indication{Kind: IndSetup, Call: call, IEs: ies})
	return nil
}

// Rcv delivers a subsequent message on an already-open transaction.
func (e *Entity) Rcv(tr *trans.Transaction, msgTypeOctet uint8, ies []nwk.ParsedIE) error {
	mt := msgType(msgTypeOctet)
	call, ok := e.calls[tr]
	if !ok {
		return fmt.Errorf("cc: message %s for unknown call", mt)
	}
	if err := call.checkTransition(mt); err != nil {
		if e.Log != nil {
			e.Log.Warn("cc: %v", err)
		}
		return err
	}

	switch mt {
	case msgSetupAck:
		call.setState(StateOverlapSending)
		e.notify(Indication{Kind: IndSetupAck, Call: call, IEs: ies})
	case msgCallProc:
		call.setState(StateOutgoingCallProc)
		e.notify(Indication{Kind: IndCallProc, Call: call, IEs: ies})
	case msgAlerting:
		call.setState(StateCallDelivered)
		e.notify(Indication{Kind: IndAlerting, Call: call, IEs: ies})
	case msgConnect:
		// Stay in the current state (CALL-INITIATED, OUTGOING-CALL-
		// PROCEEDING or CALL-DELIVERED): CC-CONNECT-ACK is only sent once the
		// application answers connect_ind with ConnectRes.
		call.stopSetupTimer()
		e.notify(Indication{Kind: IndConnect, Call: call, IEs: ies})
	case msgConnectAck:
		call.setState(StateActive)
		e.notify(Indication{Kind: IndConnectAck, Call: call, IEs: ies})
	case msgRelease:
		if call.state == StateReleaseRequest {
			// Release collision: both sides sent RELEASE concurrently.
			// There is no RELEASE-COM owed back, just confirmation.
			e.notify(Indication{Kind: IndReleaseCfm, Call: call, IEs: ies})
			e.teardown(call)
			break
		}
		call.setState(StateReleaseRequest)
		e.notify(Indication{Kind: IndRelease, Call: call, IEs: ies})
	case msgReleaseCom:
		if call.state == StateReleaseRequest {
			e.notify(Indication{Kind: IndReleaseCfm, Call: call, IEs: ies})
		} else {
			e.notify(Indication{Kind: IndReject, Call: call, IEs: ies})
		}
		e.teardown(call)
	case msgServiceChange:
		e.notify(Indication{Kind: IndServiceChange, Call: call, IEs: ies})
	case msgServiceAccept:
		e.notify(Indication{Kind: IndServiceChangeAccept, Call: call, IEs: ies})
	case msgServiceReject:
		e.notify(Indication{Kind: IndServiceChangeReject, Call: call, IEs: ies})
	case msgInfo:
		e.notify(Indication{Kind: IndInfo, Call: call, IEs: ies})
	case msgIwuInfo:
		e.notify(Indication{Kind: IndIwuInfo, Call: call, IEs: ies})
	}
	return nil
}

// Shutdown is called by the Transaction Layer when the underlying
// transaction is released out from under the entity; the call is torn
// down without a RELEASE-COM exchange.
func (e *Entity) Shutdown(tr *trans.Transaction, reason error) {
	if call, ok := e.calls[tr]; ok {
		e.teardown(call)
	}
}

func (e *Entity) newCall(tr *trans.Transaction) *Call {
	call := &Call{tr: tr, state: StateNull, entity: e}
	if e.timers != nil {
		call.setupTimer = e.timers.Alloc()
		call.setupTimer.Setup(call.setupTimeout, nil)
	}
	e.calls[tr] = call
	return call
}

func (e *Entity) notify(ind Indication) {
	if e.listener != nil {
		e.listener.CCIndication(ind)
	}
}

// teardown releases call's resources exactly once: both halves of a
// release collision resolve independently and may each reach here on
// their own, and the release-guard timer may also still be pending.
func (e *Entity) teardown(call *Call) {
	if call.released {
		return
	}
	call.released = true
	call.stopSetupTimer()
	call.stopReleaseTimer()
	for _, t := range []lower.Timer{call.setupTimer, call.releaseTimer} {
		if t != nil {
			t.Free()
		}
	}
	call.setupTimer, call.releaseTimer = nil, nil
	if call.uplane != nil {
		_ = call.uplane.Close()
		call.uplane = nil
	}
	delete(e.calls, call.tr)
	e.table.Release(call.tr.TI)
}

func (e *Entity) sendReleaseCom(call *Call, reason uint8) error {
	return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCReleaseCom, map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: reason}},
	})
}

// SetupRequest originates a call: the PP/FP-initiated primitive that
// allocates a transaction, sends SETUP and arms the setup timer,
// grounded on dect_mncc_setup_req.
func (e *Entity) SetupRequest(service nwk.BasicService, calledNumber string) (*Call, error) {
	tr, err := e.table.Allocate(e.config.Mode == config.ModePP)
	if err != nil {
		return nil, err
	}
	call := e.newCall(tr)
	call.BasicService = service
	call.CalledNumber = calledNumber

	values := map[nwk.IEType][]nwk.IE{
		nwk.IEBasicService: {service},
	}
	if calledNumber != "" {
		values[nwk.IECalledPartyNumber] = []nwk.IE{nwk.CalledPartyNumber{Digits: calledNumber}}
	}
	if err := e.disp.SendMessage(trans.PDCallControl, tr.TI, nwk.MsgCCSetup, values); err != nil {
		e.teardown(call)
		return nil, err
	}
	call.setState(StateCallInitiated)
	call.armSetupTimer()
	return call, nil
}

// AlertRequest sends CC-ALERTING for an inbound call, grounded on
// dect_mncc_alert_req.
func (e *Entity) AlertRequest(call *Call) error {
	if call.state != StateCallPresent {
		return &ErrUnexpectedInState{State: call.state, Msg: msgAlerting}
	}
	if err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCAlerting, nil); err != nil {
		return err
	}
	call.setState(StateCallReceived)
	return nil
}

// SetupAckRequest requests overlap sending for an inbound call: the FP
// has the call but needs more dialled digits before it can proceed,
// grounded on dect_mncc_setup_ack_req.
func (e *Entity) SetupAckRequest(call *Call) error {
	if call.state != StateCallPresent {
		return &ErrUnexpectedInState{State: call.state, Msg: msgSetupAck}
	}
	if err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCSetupAck, nil); err != nil {
		return err
	}
	call.setState(StateOverlapReceiving)
	return nil
}

// CallProcRequest tells the calling side the call is being processed,
// grounded on dect_mncc_call_proc_req; legal both straight off an
// inbound SETUP and after an overlap-receiving round.
func (e *Entity) CallProcRequest(call *Call) error {
	switch call.state {
	case StateCallPresent, StateOverlapReceiving:
	default:
		return &ErrUnexpectedInState{State: call.state, Msg: msgCallProc}
	}
	if err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCCallProc, nil); err != nil {
		return err
	}
	call.setState(StateIncomingCallProc)
	return nil
}

// ConnectRequest accepts an inbound call, grounded on
// dect_mncc_connect_req. It moves to CONNECT-REQUEST, not ACTIVE: the
// call only becomes active once the peer's CC-CONNECT-ACK arrives.
func (e *Entity) ConnectRequest(call *Call) error {
	if err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCConnect, nil); err != nil {
		return err
	}
	call.setState(StateConnectRequest)
	return nil
}

// ConnectRes answers an inbound CC-CONNECT (delivered as IndConnect):
// the application has decided to activate the call, so CC-CONNECT-ACK
// is sent now and the call moves to ACTIVE, grounded on
// dect_mncc_connect_res.
func (e *Entity) ConnectRes(call *Call) error {
	switch call.state {
	case StateCallInitiated, StateOutgoingCallProc, StateCallDelivered:
	default:
		return &ErrUnexpectedInState{State: call.state, Msg: msgConnectAck}
	}
	if err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCConnectAck, nil); err != nil {
		return err
	}
	call.setState(StateActive)
	return nil
}

// RejectRequest declines an inbound call before it is ever connected,
// sending CC-RELEASE-COM directly rather than going through a
// RELEASE/RELEASE-COM round trip: there is nothing to release yet.
func (e *Entity) RejectRequest(call *Call, reason uint8) error {
	switch call.state {
	case StateCallPresent, StateOverlapReceiving, StateIncomingCallProc, StateCallReceived:
	default:
		return &ErrUnexpectedInState{State: call.state, Msg: msgReleaseCom}
	}
	err := e.sendReleaseCom(call, reason)
	e.teardown(call)
	return err
}

// ReleaseRequest tears down call with reason, grounded on
// dect_mncc_release_req. It arms the release-guard timer rather than
// tearing down immediately: the transaction is only released once the
// peer's RELEASE-COM arrives (via ReleaseResponse on the peer's side)
// or the guard window expires.
func (e *Entity) ReleaseRequest(call *Call, reason uint8) error {
	if call.released {
		return nil
	}
	call.setState(StateReleaseRequest)
	err := e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCRelease, map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: reason}},
	})
	call.armReleaseTimer(e.timers, call.releaseTimeout)
	return err
}

// ReleaseResponse answers an inbound CC-RELEASE (delivered as
// IndRelease): the application decides when to actually send
// CC-RELEASE-COM and tear the call down, rather than the entity doing
// it unconditionally on receipt, grounded on dect_mncc_release_res.
func (e *Entity) ReleaseResponse(call *Call, reason uint8) error {
	if call.released {
		return nil
	}
	err := e.sendReleaseCom(call, reason)
	e.teardown(call)
	return err
}

// InfoRequest sends CC-INFO carrying values, grounded on
// dect_mncc_info_req; used directly for display/keypad exchanges and
// via FacilityRequest for FACILITY.
func (e *Entity) InfoRequest(call *Call, values map[nwk.IEType][]nwk.IE) error {
	return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCInfo, values)
}

// FacilityRequest piggybacks a FACILITY IE on CC-INFO: the original
// protocol never gave FACILITY a standalone message of its own.
func (e *Entity) FacilityRequest(call *Call, facility []byte) error {
	return e.InfoRequest(call, map[nwk.IEType][]nwk.IE{
		nwk.IEFacility: {nwk.RawOctets{IEType: nwk.IEFacility, Content: facility}},
	})
}

// IwuInfoRequest sends CC-IWU-INFO, grounded on dect_mncc_iwu_info_req.
func (e *Entity) IwuInfoRequest(call *Call, iwu nwk.IWUToIWU) error {
	return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCIwuInfo, map[nwk.IEType][]nwk.IE{
		nwk.IEIWUToIWU: {iwu},
	})
}

// ModifyRequest proposes a service change, grounded on
// dect_mncc_modify_req; mode is one of the nwk.ServiceChange* values.
func (e *Entity) ModifyRequest(call *Call, mode uint8) error {
	if call.state != StateActive {
		return &ErrUnexpectedInState{State: call.state, Msg: msgServiceChange}
	}
	return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCServiceChange, map[nwk.IEType][]nwk.IE{
		nwk.IEServiceChangeInfo: {nwk.ServiceChangeInfo(mode)},
	})
}

// ModifyResponse answers an inbound service-change proposal (delivered
// as IndServiceChange) with CC-SERVICE-ACCEPT or CC-SERVICE-REJECT.
func (e *Entity) ModifyResponse(call *Call, accept bool, reason uint8) error {
	if accept {
		return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCServiceAccept, nil)
	}
	return e.disp.SendMessage(trans.PDCallControl, call.tr.TI, nwk.MsgCCServiceReject, map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: reason}},
	})
}

// HoldRequest/HoldResponse and RetrieveRequest/RetrieveResponse are
// service-change modes, not distinct messages: SUSPEND/RESUME from
// dect_service_change_modes.
func (e *Entity) HoldRequest(call *Call) error { return e.ModifyRequest(call, nwk.ServiceChangeSuspend) }

func (e *Entity) HoldResponse(call *Call, accept bool, reason uint8) error {
	return e.ModifyResponse(call, accept, reason)
}

func (e *Entity) RetrieveRequest(call *Call) error { return e.ModifyRequest(call, nwk.ServiceChangeResume) }

func (e *Entity) RetrieveResponse(call *Call, accept bool, reason uint8) error {
	return e.ModifyResponse(call, accept, reason)
}
