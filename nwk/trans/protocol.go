package trans

import (
	"fmt"

	"github.com/rob-gra/go-dect/nwk"
)

// Protocol is implemented once per upper-layer entity (cc.Entity,
// mm.Entity) and registered with a Dispatcher; it is the Transaction
// Layer's only view of CC/MM, mirroring the original's cc_protocol/
// mm_protocol struct of function pointers.
type Protocol interface {
	// Discriminator returns the protocol discriminator this entity owns.
	Discriminator() ProtocolDiscriminator

	// Open is called for a message that establishes a new transaction
	// (no matching TI yet in the Table): descriptor-engine decoding has
	// already happened, so ies is ready to hand to the entity's state
	// machine.
	Open(tr *Transaction, msgType uint8, ies []nwk.ParsedIE) error

	// Rcv delivers a subsequent message for an already-open transaction.
	Rcv(tr *Transaction, msgType uint8, ies []nwk.ParsedIE) error

	// Shutdown notifies the entity that its transaction was released by
	// the Transaction Layer: the Dispatcher does this when a message on an
	// open transaction fails to decode. The Dispatcher has no link-teardown
	// entry point, so link loss does not reach Shutdown.
	Shutdown(tr *Transaction, reason error)
}

// LinkWriter is the minimal outbound path a Dispatcher needs: send one
// complete NWK message (protocol discriminator/TI/message-type header
// plus descriptor-engine-built IEs) on the link. A real deployment wires
// this to lower.Socket; tests substitute an in-memory fake.
type LinkWriter interface {
	WriteMessage(b []byte) error
}

// header octet layout, EN 300 175-5 subclause 7.3: byte0's low nibble
// carries the protocol discriminator, bits 7-5 the TI value and bit 8
// the flag marking a PP-allocated TI; byte1 is the message type.
func decodeHeader(b []byte) (ProtocolDiscriminator, TI, uint8, []byte, error) {
	if len(b) < 2 {
		return 0, TI{}, 0, nil, fmt.Errorf("trans: message shorter than header")
	}
	pd := ProtocolDiscriminator(b[0] & 0x0f)
	tiOctet := b[0] >> 4
	ti := TI{Value: tiOctet & 0x07, AllocatedByPP: tiOctet&0x08 != 0}
	msgType := b[1]
	return pd, ti, msgType, b[2:], nil
}

func encodeHeader(pd ProtocolDiscriminator, ti TI, msgType uint8) []byte {
	var flag uint8
	if ti.AllocatedByPP {
		flag = 0x08
	}
	byte0 := (ti.Value&0x07|flag)<<4 | uint8(pd)&0x0f
	return []byte{byte0, msgType}
}

// Dispatcher routes inbound wire messages to the registered Protocol for
// their discriminator, allocating or looking up the Transaction as
// needed, and exposes SendMessage for the entities' outbound path. One
// Dispatcher serves one link: TI namespaces, and therefore tables, are
// per link.
type Dispatcher struct {
	mode        nwk.Mode
	link        LinkWriter
	protocols   map[ProtocolDiscriminator]Protocol
	tables      map[ProtocolDiscriminator]*Table
	descriptors map[ProtocolDiscriminator]map[uint8]*nwk.MsgDesc
}

// NewDispatcher builds a Dispatcher bound to one link. Each Dispatcher
// owns its own message-descriptor table, so a process hosting more than
// one NWK handle (e.g. several tests, or a gateway fronting several
// links) never collides registering the same message types twice.
func NewDispatcher(mode nwk.Mode, link LinkWriter) *Dispatcher {
	return &Dispatcher{
		mode:        mode,
		link:        link,
		protocols:   make(map[ProtocolDiscriminator]Protocol),
		tables:      make(map[ProtocolDiscriminator]*Table),
		descriptors: make(map[ProtocolDiscriminator]map[uint8]*nwk.MsgDesc),
	}
}

// Register binds a Protocol, its transaction table capacity, and its
// message descriptor table to this dispatcher. Calling Register twice
// for the same discriminator panics, mirroring nwk.register's
// duplicate-registration guard.
func (d *Dispatcher) Register(p Protocol, capacity int, descriptors map[uint8]*nwk.MsgDesc) *Table {
	pd := p.Discriminator()
	if _, exists := d.protocols[pd]; exists {
		panic(fmt.Sprintf("trans: duplicate protocol registration for discriminator 0x%x", pd))
	}
	d.descriptors[pd] = descriptors
	table := NewTable(pd, capacity)
	d.protocols[pd] = p
	d.tables[pd] = table
	return table
}

// Receive decodes one inbound wire message and routes it to the bound
// Protocol, allocating a Transaction on first sight of its TI or
// delivering to the existing one otherwise
func (d *Dispatcher) Receive(raw []byte) error {
	pd, ti, msgType, rest, err := decodeHeader(raw)
	if err != nil {
		return err
	}

	proto, ok := d.protocols[pd]
	if !ok {
		return fmt.Errorf("trans: no protocol registered for discriminator 0x%x", pd)
	}
	table := d.tables[pd]

	tr, existing := table.Lookup(ti)

	desc, ies, derr := d.decodeIEs(pd, msgType, rest)
	if derr != nil {
		if existing {
			table.Release(ti)
			proto.Shutdown(tr, derr)
		}
		return derr
	}
	_ = desc

	if existing {
		return proto.Rcv(tr, msgType, ies)
	}

	// A message that opens a new transaction binds its TI with Accept
	// before Open runs, since Open receives the Transaction; if Open
	// rejects the message the TI is released again and a reject is sent,
	// so a rejected opener leaves no slot bound.
	tr, err = table.Accept(ti)
	if err != nil {
		return err
	}
	if err := proto.Open(tr, msgType, ies); err != nil {
		table.Release(ti)
		d.sendUnknownTransactionReject(pd, ti, msgType)
		return err
	}
	return nil
}

// sendUnknownTransactionReject tells the peer its opening message was
// rejected, rather than leaving it to time out: CC gets a RELEASE-COM,
// MM an ACCESS-RIGHTS-REJECT-shaped reason on whichever reject message
// its own message type implies. Both protocols carry RELEASE-REASON in
// the same IE slot, so one helper covers both discriminators.
func (d *Dispatcher) sendUnknownTransactionReject(pd ProtocolDiscriminator, ti TI, rejectedMsgType uint8) {
	reject, ok := rejectMessageFor(pd, rejectedMsgType)
	if !ok {
		return
	}
	values := map[nwk.IEType][]nwk.IE{
		nwk.IEReleaseReason: {nwk.ReleaseReason{Reason: nwk.ReleaseUnknownTI}},
	}
	_ = d.SendMessage(pd, ti, reject, values)
}

// rejectMessageFor names the wire message that declines an opening
// message transitionAllowed never learns about, since the transaction
// was never installed for the entity to refuse through its own state
// machine.
func rejectMessageFor(pd ProtocolDiscriminator, rejectedMsgType uint8) (uint8, bool) {
	switch pd {
	case PDCallControl:
		return nwk.MsgCCReleaseCom, true
	case PDMobility:
		switch rejectedMsgType {
		case nwk.MsgMMLocateRequest:
			return nwk.MsgMMLocateReject, true
		case nwk.MsgMMTempIdentityAssign:
			return nwk.MsgMMTempIdentityAssignRej, true
		default:
			return nwk.MsgMMAccessRightsReject, true
		}
	default:
		return 0, false
	}
}

func (d *Dispatcher) decodeIEs(pd ProtocolDiscriminator, msgType uint8, content []byte) (*nwk.MsgDesc, []nwk.ParsedIE, error) {
	desc, ok := d.descriptors[pd][msgType]
	if !ok {
		return nil, nil, fmt.Errorf("trans: no message descriptor for type 0x%x", msgType)
	}
	dh := &nwk.Handle{Mode: d.mode}
	ies, err := dh.ParseMessage(desc, content, false)
	return desc, ies, err
}

// SendMessage builds the wire bytes for an outbound message against its
// descriptor and writes them to the link.
func (d *Dispatcher) SendMessage(pd ProtocolDiscriminator, ti TI, msgType uint8, values map[nwk.IEType][]nwk.IE) error {
	desc, ok := d.descriptors[pd][msgType]
	if !ok {
		return fmt.Errorf("trans: no message descriptor for type 0x%x", msgType)
	}
	dh := &nwk.Handle{Mode: d.mode}
	body, err := dh.BuildMessage(desc, values, true)
	if err != nil {
		return err
	}
	out := append(encodeHeader(pd, ti, msgType), body...)
	return d.link.WriteMessage(out)
}
