package trans

import (
	"fmt"
	"testing"

	"github.com/rob-gra/go-dect/nwk"
)

type fakeLink struct {
	sent [][]byte
}

func (f *fakeLink) WriteMessage(b []byte) error {
	f.sent = append(f.sent, append([]byte(nil), b...))
	return nil
}

type fakeProtocol struct {
	pd         ProtocolDiscriminator
	opened     []uint8
	rcvd       []uint8
	rejectOpen bool
}

func (p *fakeProtocol) Discriminator() ProtocolDiscriminator { return p.pd }
func (p *fakeProtocol) Open(tr *Transaction, msgType uint8, ies []nwk.ParsedIE) error {
	if p.rejectOpen {
		return fmt.Errorf("fakeProtocol: rejecting %#x", msgType)
	}
	p.opened = append(p.opened, msgType)
	return nil
}
func (p *fakeProtocol) Rcv(tr *Transaction, msgType uint8, ies []nwk.ParsedIE) error {
	p.rcvd = append(p.rcvd, msgType)
	return nil
}
func (p *fakeProtocol) Shutdown(tr *Transaction, reason error) {}

const testMsgTypeA uint8 = 0xa1
const testMsgTypeB uint8 = 0xa2

func TestDispatcherReceiveOpensThenDelivers(t *testing.T) {
	link := &fakeLink{}
	disp := NewDispatcher(nwk.ModeFP, link)
	proto := &fakeProtocol{pd: PDCallControl}
	disp.Register(proto, 7, map[uint8]*nwk.MsgDesc{
		testMsgTypeA: {Name: "TEST-A", IEs: nil},
		testMsgTypeB: {Name: "TEST-B", IEs: nil},
	})

	// byte0: TI value 2, allocated by PP (bit 0x08 low nibble... encoded
	// via the high nibble per encodeHeader); byte1: message type.
	ti := TI{Value: 2, AllocatedByPP: true}
	first := encodeHeader(PDCallControl, ti, testMsgTypeA)
	if err := disp.Receive(first); err != nil {
		t.Fatalf("Receive (open): %v", err)
	}
	if len(proto.opened) != 1 || proto.opened[0] != testMsgTypeA {
		t.Fatalf("expected Open called once with testMsgTypeA, got %v", proto.opened)
	}

	second := encodeHeader(PDCallControl, ti, testMsgTypeB)
	if err := disp.Receive(second); err != nil {
		t.Fatalf("Receive (rcv): %v", err)
	}
	if len(proto.rcvd) != 1 || proto.rcvd[0] != testMsgTypeB {
		t.Fatalf("expected Rcv called once with testMsgTypeB, got %v", proto.rcvd)
	}
}

func TestDispatcherSendMessageWritesHeader(t *testing.T) {
	const msgType uint8 = 0xa3

	link := &fakeLink{}
	disp := NewDispatcher(nwk.ModePP, link)
	proto := &fakeProtocol{pd: PDMobility}
	disp.Register(proto, 1, map[uint8]*nwk.MsgDesc{
		msgType: {Name: "TEST-SEND", IEs: nil},
	})

	ti := TI{Value: 0, AllocatedByPP: true}
	if err := disp.SendMessage(PDMobility, ti, msgType, nil); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(link.sent) != 1 {
		t.Fatalf("expected 1 message written, got %d", len(link.sent))
	}
	pd, gotTI, gotType, _, err := decodeHeader(link.sent[0])
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if pd != PDMobility || gotTI != ti || gotType != msgType {
		t.Fatalf("got pd=%v ti=%v type=%v", pd, gotTI, gotType)
	}
}

func TestDispatcherReceiveReleasesTIWhenOpenRejects(t *testing.T) {
	link := &fakeLink{}
	disp := NewDispatcher(nwk.ModeFP, link)
	proto := &fakeProtocol{pd: PDCallControl, rejectOpen: true}
	table := disp.Register(proto, 7, map[uint8]*nwk.MsgDesc{
		testMsgTypeA: {Name: "TEST-A", IEs: nil},
	})

	ti := TI{Value: 3, AllocatedByPP: true}
	if err := disp.Receive(encodeHeader(PDCallControl, ti, testMsgTypeA)); err == nil {
		t.Fatal("expected Receive to surface the Open rejection")
	}
	if len(proto.opened) != 0 {
		t.Fatalf("expected Open never to be recorded as accepted, got %v", proto.opened)
	}
	if table.Len() != 0 {
		t.Fatalf("expected the TI to be released on rejection, table has %d entries", table.Len())
	}
	if _, stillThere := table.Lookup(ti); stillThere {
		t.Fatal("expected ti to no longer resolve after rejection")
	}
}

func TestDecodeHeaderRejectsShortBuffer(t *testing.T) {
	if _, _, _, _, err := decodeHeader([]byte{0x01}); err == nil {
		t.Fatal("expected error for short buffer")
	}
}
