package cc

import (
	"testing"
	"time"

	"github.com/rob-gra/go-dect/config"
	"github.com/rob-gra/go-dect/lower"
	"github.com/rob-gra/go-dect/nwk"
	"github.com/rob-gra/go-dect/nwk/trans"
)

type fakeLink struct {
	sent [][]byte
}

func (f *fakeLink) WriteMessage(b []byte) error {
	f.sent = append(f.sent, append([]byte(nil), b...))
	return nil
}

type fakeTimer struct {
	cb      func(lower.Timer, interface{})
	data    interface{}
	running bool
}

func (t *fakeTimer) Setup(cb func(lower.Timer, interface{}), data interface{}) {
	t.cb = cb
	t.data = data
}
func (t *fakeTimer) Start(time.Duration) { t.running = true }
func (t *fakeTimer) Stop()               { t.running = false }
func (t *fakeTimer) Running() bool       { return t.running }
func (t *fakeTimer) Free()               {}

type fakeTimerService struct{ timers []*fakeTimer }

func (s *fakeTimerService) Alloc() lower.Timer {
	tm := &fakeTimer{}
	s.timers = append(s.timers, tm)
	return tm
}

type recordingListener struct {
	indications []Indication
}

func (l *recordingListener) CCIndication(ind Indication) {
	l.indications = append(l.indications, ind)
}

func newTestEntity(t *testing.T) (*Entity, *fakeLink, *fakeTimerService, *recordingListener) {
	t.Helper()
	cfg := config.DefaultHandleConfig(config.ModePP)
	if err := cfg.Valid(); err != nil {
		t.Fatalf("cfg.Valid: %v", err)
	}
	link := &fakeLink{}
	disp := trans.NewDispatcher(nwk.ModePP, link)
	timers := &fakeTimerService{}
	listener := &recordingListener{}
	e := NewEntity(&cfg, disp, timers, listener, nil)
	return e, link, timers, listener
}

func TestSetupRequestSendsSetupAndArmsTimer(t *testing.T) {
	e, link, timers, _ := newTestEntity(t)

	call, err := e.SetupRequest(nwk.BasicService{Service: 0, Class: 1}, "100")
	if err != nil {
		t.Fatalf("SetupRequest: %v", err)
	}
	if call.State() != StateCallInitiated {
		t.Fatalf("got state %v, want CALL-INITIATED", call.State())
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(link.sent))
	}
	if len(timers.timers) != 1 || !timers.timers[0].running {
		t.Fatal("expected setup timer to be armed")
	}
}

func TestSetupTimeoutReleasesCall(t *testing.T) {
	e, link, timers, _ := newTestEntity(t)

	call, err := e.SetupRequest(nwk.BasicService{}, "")
	if err != nil {
		t.Fatalf("SetupRequest: %v", err)
	}

	timers.timers[0].cb(timers.timers[0], timers.timers[0].data)

	if call.State() != StateReleaseRequest {
		t.Fatalf("got state %v, want RELEASE-REQUEST", call.State())
	}
	if len(link.sent) != 2 {
		t.Fatalf("expected SETUP + RELEASE sent, got %d messages", len(link.sent))
	}
}

func TestInboundSetupOpensCallPresent(t *testing.T) {
	e, _, _, listener := newTestEntity(t)

	wire, err := (&nwk.Handle{Mode: nwk.ModeFP}).BuildMessage(nwk.CCSetupDesc, map[nwk.IEType][]nwk.IE{
		nwk.IEBasicService: {nwk.BasicService{Service: 0, Class: 0}},
	}, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}

	ti := trans.TI{Value: 0, AllocatedByPP: true}
	header := []byte{(ti.Value&0x07|0x08)<<4 | uint8(trans.PDCallControl)&0x0f, nwk.MsgCCSetup}
	raw := append(header, wire...)

	if err := e.disp.Receive(raw); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if len(listener.indications) != 1 || listener.indications[0].Kind != IndSetup {
		t.Fatalf("expected one IndSetup indication, got %+v", listener.indications)
	}
	if listener.indications[0].Call.State() != StateCallPresent {
		t.Fatalf("got state %v, want CALL-PRESENT", listener.indications[0].Call.State())
	}
}

func TestConnectRequestAwaitsConnectAckBeforeActive(t *testing.T) {
	e, link, _, _ := newTestEntity(t)

	call := e.newCall(&trans.Transaction{})
	call.setState(StateIncomingCallProc)

	if err := e.ConnectRequest(call); err != nil {
		t.Fatalf("ConnectRequest: %v", err)
	}
	if call.State() != StateConnectRequest {
		t.Fatalf("got state %v, want CONNECT-REQUEST", call.State())
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(link.sent))
	}
}

func TestInboundConnectWaitsForConnectRes(t *testing.T) {
	e, link, _, listener := newTestEntity(t)

	call, err := e.SetupRequest(nwk.BasicService{}, "100")
	if err != nil {
		t.Fatalf("SetupRequest: %v", err)
	}
	call.setState(StateOutgoingCallProc)

	wire, err := (&nwk.Handle{Mode: nwk.ModeFP}).BuildMessage(nwk.CCConnectDesc, nil, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	header := []byte{(call.tr.TI.Value&0x07|0x08)<<4 | uint8(trans.PDCallControl)&0x0f, nwk.MsgCCConnect}
	if err := e.disp.Receive(append(header, wire...)); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if call.State() != StateOutgoingCallProc {
		t.Fatalf("got state %v, want unchanged OUTGOING-CALL-PROCEEDING pending connect_res", call.State())
	}
	if len(listener.indications) != 1 || listener.indications[0].Kind != IndConnect {
		t.Fatalf("expected one IndConnect indication, got %+v", listener.indications)
	}

	if err := e.ConnectRes(call); err != nil {
		t.Fatalf("ConnectRes: %v", err)
	}
	if call.State() != StateActive {
		t.Fatalf("got state %v, want ACTIVE after connect_res", call.State())
	}
	if len(link.sent) != 2 {
		t.Fatalf("expected SETUP + CONNECT-ACK sent, got %d", len(link.sent))
	}
}

func TestReleaseResponseDefersReleaseComToApplication(t *testing.T) {
	e, link, _, listener := newTestEntity(t)

	call, err := e.SetupRequest(nwk.BasicService{}, "100")
	if err != nil {
		t.Fatalf("SetupRequest: %v", err)
	}
	call.setState(StateActive)

	wire, err := (&nwk.Handle{Mode: nwk.ModeFP}).BuildMessage(nwk.CCReleaseDesc, map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: nwk.ReleaseNormal}},
	}, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	header := []byte{(call.tr.TI.Value&0x07|0x08)<<4 | uint8(trans.PDCallControl)&0x0f, nwk.MsgCCRelease}
	if err := e.disp.Receive(append(header, wire...)); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if len(link.sent) != 1 {
		t.Fatalf("expected no RELEASE-COM sent yet, only SETUP so far, got %d messages", len(link.sent))
	}
	if len(listener.indications) != 1 || listener.indications[0].Kind != IndRelease {
		t.Fatalf("expected one IndRelease indication, got %+v", listener.indications)
	}
	if _, stillOpen := e.calls[call.tr]; !stillOpen {
		t.Fatal("expected call to remain open until ReleaseResponse")
	}

	if err := e.ReleaseResponse(call, nwk.ReleaseNormal); err != nil {
		t.Fatalf("ReleaseResponse: %v", err)
	}
	if len(link.sent) != 2 {
		t.Fatalf("expected SETUP + RELEASE-COM sent, got %d", len(link.sent))
	}
	if _, stillOpen := e.calls[call.tr]; stillOpen {
		t.Fatal("expected call to be torn down after ReleaseResponse")
	}
}

func TestReleaseCollisionTearsDownWithoutReleaseCom(t *testing.T) {
	e, link, _, listener := newTestEntity(t)

	call, err := e.SetupRequest(nwk.BasicService{}, "100")
	if err != nil {
		t.Fatalf("SetupRequest: %v", err)
	}
	call.setState(StateActive)

	if err := e.ReleaseRequest(call, nwk.ReleaseNormal); err != nil {
		t.Fatalf("ReleaseRequest: %v", err)
	}
	if len(link.sent) != 2 {
		t.Fatalf("expected SETUP + RELEASE sent, got %d", len(link.sent))
	}

	wire, err := (&nwk.Handle{Mode: nwk.ModeFP}).BuildMessage(nwk.CCReleaseDesc, map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: nwk.ReleaseNormal}},
	}, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	header := []byte{(call.tr.TI.Value&0x07|0x08)<<4 | uint8(trans.PDCallControl)&0x0f, nwk.MsgCCRelease}
	if err := e.disp.Receive(append(header, wire...)); err != nil {
		t.Fatalf("Receive (collision): %v", err)
	}

	if len(link.sent) != 2 {
		t.Fatalf("expected no RELEASE-COM sent on a release collision, got %d messages", len(link.sent))
	}
	if len(listener.indications) != 1 || listener.indications[0].Kind != IndReleaseCfm {
		t.Fatalf("expected one IndReleaseCfm indication, got %+v", listener.indications)
	}
	if _, stillOpen := e.calls[call.tr]; stillOpen {
		t.Fatal("expected call to be torn down on release collision")
	}
}

func TestSecondEntityDoesNotPanicOnDescriptorRegistration(t *testing.T) {
	_, _, _, listener := newTestEntity(t)

	disp := trans.NewDispatcher(nwk.ModePP, &fakeLink{})
	cfg := config.DefaultHandleConfig(config.ModePP)
	NewEntity(&cfg, disp, nil, listener, nil)
}
