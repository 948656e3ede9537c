package nwk

import "fmt"

// RejectCause is the wire-level release cause the Transaction Layer or a
// protocol entity sends back when a parse failure is severe enough to
// abort the transaction.
type RejectCause uint8

const (
	CauseUnknownTransactionIdentifier RejectCause = 0x01
	CauseInvalidIEContents            RejectCause = 0x1e
	CauseMandatoryIEMissing           RejectCause = 0x1f
)

// UnsupportedIEError is returned by Handle.Parse/Build when no handler
// is registered for the given IE identifier.
type UnsupportedIEError struct {
	Type IEType
}

func (e *UnsupportedIEError) Error() string {
	return fmt.Sprintf("nwk: no handler registered for IE 0x%02x", uint8(e.Type))
}

// MalformedHeaderError is returned when an IE header does not obey its
// wire length rules. Action: abort parse of the current message, drop.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return "nwk: malformed IE header: " + e.Reason
}

// ContentError is returned by a per-IE parser when the content bytes
// violate that IE's own encoding rules (length out of bounds, illegal
// discriminator, broken group-end bit discipline).
type ContentError struct {
	IE     IEType
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("nwk: IE <%s> content error: %s", Name(e.IE), e.Reason)
}

// MandatoryIEMissingError is returned by the message descriptor engine
// when a mandatory IE for the receive direction was never seen on the
// wire.
type MandatoryIEMissingError struct {
	IE IEType
}

func (e *MandatoryIEMissingError) Error() string {
	return fmt.Sprintf("nwk: mandatory IE <%s> missing", Name(e.IE))
}

// MandatoryIEError is returned when a mandatory IE was present but
// failed to parse.
type MandatoryIEError struct {
	IE  IEType
	Err error
}

func (e *MandatoryIEError) Error() string {
	return fmt.Sprintf("nwk: mandatory IE <%s> parse error: %v", Name(e.IE), e.Err)
}

func (e *MandatoryIEError) Unwrap() error { return e.Err }

// InvalidIEError is returned by the build traversal when the caller
// populated a slot the send direction marks StatusNone, or left a
// StatusMandatory slot empty.
type InvalidIEError struct {
	IE     IEType
	Reason string
}

func (e *InvalidIEError) Error() string {
	return fmt.Sprintf("nwk: IE <%s>: %s", Name(e.IE), e.Reason)
}
