package mm

import (
	"testing"

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

type recordingListener struct {
	indications []Indication
}

func (l *recordingListener) MMIndication(ind Indication) {
	l.indications = append(l.indications, ind)
}

func newTestEntity(t *testing.T, mode config.Mode) (*Entity, *fakeLink, *recordingListener) {
	t.Helper()
	cfg := config.DefaultHandleConfig(mode)
	if err := cfg.Valid(); err != nil {
		t.Fatalf("cfg.Valid: %v", err)
	}
	link := &fakeLink{}
	nwkMode := nwk.ModeFP
	if mode == config.ModePP {
		nwkMode = nwk.ModePP
	}
	disp := trans.NewDispatcher(nwkMode, link)
	listener := &recordingListener{}
	e := NewEntity(&cfg, disp, nil, listener, nil)
	return e, link, listener
}

func TestLocateRequestSendsLocateRequest(t *testing.T) {
	e, link, _ := newTestEntity(t, config.ModePP)

	identity := nwk.PortableIdentity{Kind: nwk.IdentityIPUI, IPUI: lower.IPUI{Type: lower.IPUITypeO, O: 0x1234}}
	tr, err := e.LocateRequest(identity)
	if err != nil {
		t.Fatalf("LocateRequest: %v", err)
	}
	if tr == nil {
		t.Fatal("expected non-nil transaction")
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(link.sent))
	}
}

func TestInboundLocateAcceptReleasesTransaction(t *testing.T) {
	e, _, listener := newTestEntity(t, config.ModePP)

	identity := nwk.PortableIdentity{Kind: nwk.IdentityIPUI, IPUI: lower.IPUI{Type: lower.IPUITypeO, O: 0x1234}}
	tr, err := e.LocateRequest(identity)
	if err != nil {
		t.Fatalf("LocateRequest: %v", err)
	}

	wire, err := (&nwk.Handle{Mode: nwk.ModeFP}).BuildMessage(nwk.MMLocateAcceptDesc, nil, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	header := []byte{(tr.tr.TI.Value&0x07|0x08)<<4 | uint8(trans.PDMobility)&0x0f, nwk.MsgMMLocateAccept}
	raw := append(header, wire...)

	if err := e.disp.Receive(raw); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if len(listener.indications) != 1 || listener.indications[0].Kind != IndLocateAccept {
		t.Fatalf("expected one IndLocateAccept indication, got %+v", listener.indications)
	}
	if _, stillOpen := e.txns[tr.tr]; stillOpen {
		t.Fatal("expected transaction to be released after LOCATE-ACCEPT")
	}
}

func TestAccessRightsResponseAcceptSendsAcceptAndReleases(t *testing.T) {
	e, link, listener := newTestEntity(t, config.ModeFP)

	identity := nwk.PortableIdentity{Kind: nwk.IdentityIPUI, IPUI: lower.IPUI{Type: lower.IPUITypeO, O: 0x5678}}
	wire, err := (&nwk.Handle{Mode: nwk.ModePP}).BuildMessage(nwk.MMAccessRightsRequestDesc, map[nwk.IEType][]nwk.IE{
		nwk.IEPortableIdentity: {identity},
	}, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	ti := trans.TI{Value: 0, AllocatedByPP: true}
	header := []byte{(ti.Value&0x07|0x08)<<4 | uint8(trans.PDMobility)&0x0f, nwk.MsgMMAccessRightsRequest}
	if err := e.disp.Receive(append(header, wire...)); err != nil {
		t.Fatalf("Receive: %v", err)
	}

	mt := listener.indications[0].Tr
	assigned := nwk.NWKAssignedIdentity{TPUI: lower.TPUI{Value: 1}}
	if err := e.AccessRightsResponse(mt, true, 0, &assigned); err != nil {
		t.Fatalf("AccessRightsResponse: %v", err)
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(link.sent))
	}
	if _, stillOpen := e.txns[mt.tr]; stillOpen {
		t.Fatal("expected transaction to be released after ACCESS-RIGHTS-ACCEPT")
	}
}

func TestTempIdentityAssignRequestOriginatesAndAwaitsAck(t *testing.T) {
	e, link, listener := newTestEntity(t, config.ModeFP)

	assigned := nwk.NWKAssignedIdentity{TPUI: lower.TPUI{Value: 7}}
	mt, err := e.TempIdentityAssignRequest(assigned)
	if err != nil {
		t.Fatalf("TempIdentityAssignRequest: %v", err)
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(link.sent))
	}

	wire, err := (&nwk.Handle{Mode: nwk.ModePP}).BuildMessage(nwk.MMTempIdentityAssignAckDesc, nil, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	header := []byte{(mt.tr.TI.Value&0x07)<<4 | uint8(trans.PDMobility)&0x0f, nwk.MsgMMTempIdentityAssignAck}
	if err := e.disp.Receive(append(header, wire...)); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(listener.indications) != 1 || listener.indications[0].Kind != IndIdentityAssignAck {
		t.Fatalf("expected one IndIdentityAssignAck indication, got %+v", listener.indications)
	}
	if _, stillOpen := e.txns[mt.tr]; stillOpen {
		t.Fatal("expected transaction to be released after the ACK")
	}
}

func TestOpenRejectionReleasesTransactionSlot(t *testing.T) {
	e, link, _ := newTestEntity(t, config.ModeFP)

	// MM-INFO-ACCEPT cannot open a fresh transaction: openKind has no
	// case for it, so Open must reject it and the TI must come back
	// available rather than leak.
	wire, err := (&nwk.Handle{Mode: nwk.ModePP}).BuildMessage(nwk.MMInfoAcceptDesc, nil, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}
	ti := trans.TI{Value: 0, AllocatedByPP: true}
	header := []byte{(ti.Value&0x07|0x08)<<4 | uint8(trans.PDMobility)&0x0f, nwk.MsgMMInfoAccept}
	if err := e.disp.Receive(append(header, wire...)); err == nil {
		t.Fatal("expected Receive to reject an unopenable message type")
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected a reject message sent back, got %d", len(link.sent))
	}
	if e.table.Len() != 0 {
		t.Fatalf("expected the TI to be released on rejection, table has %d entries", e.table.Len())
	}
}

func TestInboundAccessRightsRequestOpensTransaction(t *testing.T) {
	e, _, listener := newTestEntity(t, config.ModeFP)

	identity := nwk.PortableIdentity{Kind: nwk.IdentityIPUI, IPUI: lower.IPUI{Type: lower.IPUITypeO, O: 0x5678}}
	wire, err := (&nwk.Handle{Mode: nwk.ModePP}).BuildMessage(nwk.MMAccessRightsRequestDesc, map[nwk.IEType][]nwk.IE{
		nwk.IEPortableIdentity: {identity},
	}, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}

	ti := trans.TI{Value: 0, AllocatedByPP: true}
	header := []byte{(ti.Value&0x07|0x08)<<4 | uint8(trans.PDMobility)&0x0f, nwk.MsgMMAccessRightsRequest}
	raw := append(header, wire...)

	if err := e.disp.Receive(raw); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(listener.indications) != 1 || listener.indications[0].Kind != IndAccessRightsRequest {
		t.Fatalf("expected one IndAccessRightsRequest indication, got %+v", listener.indications)
	}
}
