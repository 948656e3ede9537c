// Package nwk implements the S-format Information Element codec and
// the message descriptor engine of the DECT NWK layer, EN 300 175-5.
// It has no notion of transactions or protocol state machines; those
// live in trans, cc and mm.
package nwk

import "github.com/rob-gra/go-dect/internal/dlog"

// Mode selects which side of the air interface a codec invocation is
// running as; IE and message direction rules are mode
// dependent.
type Mode int

const (
	ModeFP Mode = iota
	ModePP
)

func (m Mode) String() string {
	if m == ModeFP {
		return "FP"
	}
	return "PP"
}

// IEType is the IE identifier. Fixed-length IEs (REPEAT-INDICATOR and the
// fixedDoubleOctetIEs list below) occupy one or two header octets with no
// separate length octet; all others are variable-length, sharing the
// same 1-byte identifier on the wire and the same constants here.
type IEType uint8

// Variable-length IE identifiers (EN 300 175-5).
const (
	IEExtendedHOIndicator     IEType = 0x04
	IELocationArea            IEType = 0x05
	IENWKAssignedIdentity     IEType = 0x06
	IEPortableIdentity        IEType = 0x08
	IEFixedIdentity           IEType = 0x09
	IEAuthType                IEType = 0x0b
	IEAllocationType          IEType = 0x0c
	IERand                    IEType = 0x0d
	IERes                     IEType = 0x0e
	IERs                      IEType = 0x0f
	IEIWUAttributes           IEType = 0x12
	IECallAttributes          IEType = 0x13
	IEServiceChangeInfo       IEType = 0x16
	IEConnectionAttributes    IEType = 0x17
	IECipherInfo              IEType = 0x19
	IEConnectionIdentity      IEType = 0x1b
	IEFacility                IEType = 0x1c
	IEProgressIndicator       IEType = 0x1e
	IESegmentedInfo           IEType = 0x2e
	IEAlphanumeric            IEType = 0x2f
	IEIWUToIWU                IEType = 0x2c
	IEModelIdentifier         IEType = 0x30
	IECallingPartyNumber      IEType = 0x34
	IECalledPartyNumber       IEType = 0x35
	IEDuration                IEType = 0x37
	IECalledPartySubaddress   IEType = 0x38
	IETerminalCapability      IEType = 0x3b
	IEEndToEndCompatibility   IEType = 0x3c
	IETimeDate                IEType = 0x40
	IENetworkParameter        IEType = 0x44
	IEEscapeToProprietary     IEType = 0x4e
	IECodecList               IEType = 0x4f
	IEEventsNotification      IEType = 0x52
	IECallInformation         IEType = 0x53
	IEMultiDisplay            IEType = 0x54
	IEMultiKeypad             IEType = 0x55
	IEEscapeForExtension      IEType = 0x7f
)

// Fixed-length IE identifiers: these occupy 1 (REPEAT-INDICATOR) or 2
// (the rest, the "double-octet element" form) header octets with no
// separate length octet. See header.go for the wire encoding.
const (
	IERepeatIndicator IEType = 0x80
	IESingleDisplay   IEType = 0x81
	IESingleKeypad    IEType = 0x82
	IEBasicService    IEType = 0x83
	IEReleaseReason   IEType = 0x84
	IESignal          IEType = 0x85
	IETimerRestart    IEType = 0x86
)

// fixedDoubleOctetIEs lists, in header-octet extension-selector order,
// the fixed-length IEs using the 2-octet "double-octet element" form.
// REPEAT-INDICATOR is the sole 1-octet exception (see header.go).
var fixedDoubleOctetIEs = []IEType{
	IESingleDisplay,
	IESingleKeypad,
	IEBasicService,
	IEReleaseReason,
	IESignal,
	IETimerRestart,
}

// ieMeta is the static metadata for one IE kind, keyed by IEType. It
// plays the role of cs101's infoObjSize table plus its ASDU handler
// struct, one entry per wire type.
type ieMeta struct {
	name  string
	parse func(dh *Handle, data []byte) (IE, error)
	build func(dh *Handle, v IE) ([]byte, error)
	dump  func(v IE) string
}

// registry is the dense IE-identifier-keyed table mapping each IEType to
// its parse/build/dump handlers. It is populated once at package init,
// not via constructor registration.
var registry = map[IEType]ieMeta{}

func register(t IEType, m ieMeta) {
	if _, exists := registry[t]; exists {
		panic("nwk: duplicate IE registration for " + m.name)
	}
	registry[t] = m
}

// IE is the common interface satisfied by every typed IE value. Kind
// returns the IE identifier it was parsed from, or will be built as.
type IE interface {
	Kind() IEType
}

// Handle is the per-process/per-instance codec context: it carries the
// Mode (direction rules are mode dependent) and a trace logger. It does
// not own transactions or calls; those are trans.Transaction/cc.Call.
type Handle struct {
	Mode Mode
	Log  *dlog.Logger
}

// Parse looks up the registered handler for t and invokes its parser.
// data is the IE content only (header already stripped by the caller).
func (dh *Handle) Parse(t IEType, data []byte) (IE, error) {
	meta, ok := registry[t]
	if !ok || meta.parse == nil {
		return nil, &UnsupportedIEError{Type: t}
	}
	v, err := meta.parse(dh, data)
	if err != nil {
		return nil, err
	}
	if dh.Log != nil && meta.dump != nil {
		dh.Log.Debug("IE <%s>: %s", meta.name, meta.dump(v))
	}
	return v, nil
}

// Build looks up the registered handler for v.Kind() and invokes its
// builder, returning the content bytes only (no header).
func (dh *Handle) Build(v IE) ([]byte, error) {
	meta, ok := registry[v.Kind()]
	if !ok || meta.build == nil {
		return nil, &UnsupportedIEError{Type: v.Kind()}
	}
	if dh.Log != nil && meta.dump != nil {
		dh.Log.Debug("IE <%s>: %s", meta.name, meta.dump(v))
	}
	return meta.build(dh, v)
}

// Name returns the trace name registered for t, or "UNKNOWN".
func Name(t IEType) string {
	if m, ok := registry[t]; ok {
		return m.name
	}
	return "UNKNOWN"
}
