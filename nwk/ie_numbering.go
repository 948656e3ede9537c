package nwk

import "fmt"

// ie_numbering.go covers the dialled-digit and display-text IEs:
// CALLED-PARTY-NUMBER, CALLED-PARTY-SUBADDRESS, CALLING-PARTY-NUMBER,
// ALPHANUMERIC and SEGMENTED-INFO. All five share the same "type/plan
// octet then a run of digit or character octets" shape, grounded on
// dect_sfmt_parse_call_pty_number in s_msg.c.

// NumberingType is the type-of-number field common to the three
// numbering IEs.
type NumberingType uint8

const (
	NumberUnknown          NumberingType = 0x0
	NumberInternational    NumberingType = 0x1
	NumberNational         NumberingType = 0x2
	NumberNetworkSpecific  NumberingType = 0x3
	NumberSubscriber       NumberingType = 0x4
	NumberAbbreviated      NumberingType = 0x6
	NumberReserved         NumberingType = 0x7
)

// CalledPartyNumber is the CALLED-PARTY-NUMBER IE.
type CalledPartyNumber struct {
	Type          NumberingType
	NumberingPlan uint8
	Digits        string
}

func (CalledPartyNumber) Kind() IEType { return IECalledPartyNumber }

// CallingPartyNumber is the CALLING-PARTY-NUMBER IE, which additionally
// carries a presentation/screening indicator octet.
type CallingPartyNumber struct {
	Type          NumberingType
	NumberingPlan uint8
	Presentation  uint8
	Screening     uint8
	Digits        string
}

func (CallingPartyNumber) Kind() IEType { return IECallingPartyNumber }

// CalledPartySubaddress is the CALLED-PARTY-SUBADDRESS IE: opaque digits
// tagged with an addressing type, carried end to end without
// interpretation.
type CalledPartySubaddress struct {
	Type uint8
	Raw  []byte
}

func (CalledPartySubaddress) Kind() IEType { return IECalledPartySubaddress }

// Alphanumeric is the ALPHANUMERIC IE: display text tagged with the
// character set it is encoded in ( default-profile rule is that
// FPs send ASCII/IA5 unless the PP's TERMINAL-CAPABILITY advertised
// otherwise).
type Alphanumeric struct {
	CharacterSet uint8
	Text         string
}

func (Alphanumeric) Kind() IEType { return IEAlphanumeric }

// SegmentedInfo is the SEGMENTED-INFO IE carrying one fragment of a
// message split across multiple NWK messages.
type SegmentedInfo struct {
	FirstSegment bool
	MoreToCome   bool
	Content      []byte
}

func (SegmentedInfo) Kind() IEType { return IESegmentedInfo }

func init() {
	register(IECalledPartyNumber, ieMeta{
		name:  "CALLED-PARTY-NUMBER",
		parse: parseCalledPartyNumber,
		build: buildCalledPartyNumber,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IECallingPartyNumber, ieMeta{
		name:  "CALLING-PARTY-NUMBER",
		parse: parseCallingPartyNumber,
		build: buildCallingPartyNumber,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IECalledPartySubaddress, ieMeta{
		name: "CALLED-PARTY-SUBADDRESS",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IECalledPartySubaddress, Reason: "empty content"}
			}
			raw := make([]byte, len(data)-1)
			copy(raw, data[1:])
			return CalledPartySubaddress{Type: data[0], Raw: raw}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			s, ok := v.(CalledPartySubaddress)
			if !ok {
				return nil, &ContentError{IE: IECalledPartySubaddress, Reason: "wrong Go type"}
			}
			return append([]byte{s.Type}, s.Raw...), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEAlphanumeric, ieMeta{
		name: "ALPHANUMERIC",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IEAlphanumeric, Reason: "empty content"}
			}
			return Alphanumeric{CharacterSet: data[0] >> 4, Text: string(data[1:])}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			a, ok := v.(Alphanumeric)
			if !ok {
				return nil, &ContentError{IE: IEAlphanumeric, Reason: "wrong Go type"}
			}
			return append([]byte{a.CharacterSet << 4}, []byte(a.Text)...), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IESegmentedInfo, ieMeta{
		name: "SEGMENTED-INFO",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IESegmentedInfo, Reason: "empty content"}
			}
			content := make([]byte, len(data)-1)
			copy(content, data[1:])
			return SegmentedInfo{
				FirstSegment: data[0]&0x80 != 0,
				MoreToCome:   data[0]&0x40 != 0,
				Content:      content,
			}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			s, ok := v.(SegmentedInfo)
			if !ok {
				return nil, &ContentError{IE: IESegmentedInfo, Reason: "wrong Go type"}
			}
			var flags byte
			if s.FirstSegment {
				flags |= 0x80
			}
			if s.MoreToCome {
				flags |= 0x40
			}
			return append([]byte{flags}, s.Content...), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%d bytes", len(v.(SegmentedInfo).Content)) },
	})
}

func parseCalledPartyNumber(dh *Handle, data []byte) (IE, error) {
	if len(data) < 1 {
		return nil, &ContentError{IE: IECalledPartyNumber, Reason: "empty content"}
	}
	return CalledPartyNumber{
		Type:          NumberingType(data[0] >> 4 & 0x07),
		NumberingPlan: data[0] & 0x0f,
		Digits:        string(data[1:]),
	}, nil
}

func buildCalledPartyNumber(dh *Handle, v IE) ([]byte, error) {
	n, ok := v.(CalledPartyNumber)
	if !ok {
		return nil, &ContentError{IE: IECalledPartyNumber, Reason: "wrong Go type"}
	}
	header := byte(0x80) | byte(n.Type&0x07)<<4 | n.NumberingPlan&0x0f
	return append([]byte{header}, []byte(n.Digits)...), nil
}

func parseCallingPartyNumber(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IECallingPartyNumber, Reason: "short content"}
	}
	return CallingPartyNumber{
		Type:          NumberingType(data[0] >> 4 & 0x07),
		NumberingPlan: data[0] & 0x0f,
		Presentation:  data[1] >> 5 & 0x03,
		Screening:     data[1] & 0x03,
		Digits:        string(data[2:]),
	}, nil
}

func buildCallingPartyNumber(dh *Handle, v IE) ([]byte, error) {
	n, ok := v.(CallingPartyNumber)
	if !ok {
		return nil, &ContentError{IE: IECallingPartyNumber, Reason: "wrong Go type"}
	}
	h0 := byte(n.Type&0x07)<<4 | n.NumberingPlan&0x0f
	h1 := byte(0x80) | n.Presentation&0x03<<5 | n.Screening&0x03
	return append([]byte{h0, h1}, []byte(n.Digits)...), nil
}
