package nwk

// header.go implements the IE header codec, kept deliberately
// separate from the per-IE registry: it only knows how to find the
// boundary of one wire IE and hand the registry its content bytes, or
// wrap a registry-produced content slice back into wire form.

const (
	fixedLenFlag      = 0x80 // bit 8 set: fixed-length IE
	doubleOctetMarker = 0xf0 // bits 7-4 of a double-octet-element header octet
	repeatIndicator   = 0x80 // the 1-octet fixed exception, low nibble = list type
)

func doubleOctetSelector(t IEType) (int, bool) {
	for i, id := range fixedDoubleOctetIEs {
		if id == t {
			return i, true
		}
	}
	return 0, false
}

func doubleOctetBySelector(sel int) (IEType, bool) {
	if sel < 0 || sel >= len(fixedDoubleOctetIEs) {
		return 0, false
	}
	return fixedDoubleOctetIEs[sel], true
}

// RawIE is one parsed wire IE: its identifier, its total wire length
// (header included) and its content (header stripped)
type RawIE struct {
	ID      IEType
	WireLen int
	Content []byte
}

// ParseIEHeader reads the next IE header from data and returns the
// parsed RawIE plus the IE's total wire length. data must contain at
// least the header octet(s); content may be shorter than requested if
// data is truncated, in which case an error is returned.
func ParseIEHeader(data []byte) (RawIE, error) {
	if len(data) < 1 {
		return RawIE{}, &MalformedHeaderError{Reason: "empty buffer"}
	}

	if data[0]&fixedLenFlag != 0 {
		if data[0]&0xf0 == doubleOctetMarker {
			if len(data) < 2 {
				return RawIE{}, &MalformedHeaderError{Reason: "truncated double-octet IE"}
			}
			sel := int((data[0] >> 1) & 0x07)
			id, ok := doubleOctetBySelector(sel)
			if !ok {
				return RawIE{}, &MalformedHeaderError{Reason: "unknown double-octet selector"}
			}
			return RawIE{ID: id, WireLen: 2, Content: data[1:2]}, nil
		}
		if data[0]&0xf0 == repeatIndicator&0xf0 {
			return RawIE{ID: IERepeatIndicator, WireLen: 1, Content: data[0:1]}, nil
		}
		return RawIE{}, &MalformedHeaderError{Reason: "unknown fixed-length IE class"}
	}

	if len(data) < 2 {
		return RawIE{}, &MalformedHeaderError{Reason: "truncated variable-length IE header"}
	}
	contentLen := int(data[1])
	wireLen := 2 + contentLen
	if len(data) < wireLen {
		return RawIE{}, &MalformedHeaderError{Reason: "truncated variable-length IE content"}
	}
	return RawIE{ID: IEType(data[0]), WireLen: wireLen, Content: data[2:wireLen]}, nil
}

// BuildIE wraps content (the per-IE builder's output) in its wire header
// and appends the result to dst, returning the extended slice.
//
// For the fixed-length double-octet form content must be exactly one
// byte (the value octet). For REPEAT-INDICATOR content must be exactly
// one byte whose low nibble is the list type. For every other (variable
// -length) IE, per the invariant of, wire_len == 2 + len(content).
func BuildIE(dst []byte, t IEType, content []byte) ([]byte, error) {
	if sel, ok := doubleOctetSelector(t); ok {
		if len(content) != 1 {
			return nil, &ContentError{IE: t, Reason: "double-octet IE content must be 1 byte"}
		}
		header := byte(doubleOctetMarker) | byte(sel<<1)
		return append(dst, header, content[0]), nil
	}
	if t == IERepeatIndicator {
		if len(content) != 1 {
			return nil, &ContentError{IE: t, Reason: "REPEAT-INDICATOR content must be 1 byte"}
		}
		return append(dst, repeatIndicator|(content[0]&0x0f)), nil
	}
	if len(content) > 255 {
		return nil, &ContentError{IE: t, Reason: "content exceeds 255 bytes"}
	}
	dst = append(dst, byte(t), byte(len(content)))
	return append(dst, content...), nil
}

// IsFixedLength reports whether t uses one of the header-embedded fixed
// forms rather than the (id, length, content) variable form.
func IsFixedLength(t IEType) bool {
	if t == IERepeatIndicator {
		return true
	}
	_, ok := doubleOctetSelector(t)
	return ok
}
