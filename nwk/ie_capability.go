package nwk

import "fmt"

// ie_capability.go covers the capability-negotiation IEs exchanged
// during CC setup: TERMINAL-CAPABILITY, END-TO-END-COMPATIBILITY,
// IWU-ATTRIBUTES, NETWORK-PARAMETER and EXT-HO-INDICATOR. None of these
// carry call-identifying state. TERMINAL-CAPABILITY and EXT-HO-INDICATOR
// are decoded into typed fields; the other three are kept as opaque
// RawOctets. The CC entity does not read any of them.

// TerminalCapability is the TERMINAL-CAPABILITY IE.
type TerminalCapability struct {
	Display uint8 // display capability class, EN 300 175-5 table 7.47
	Tone    uint8 // tone capability class
	Echo    uint8
	NoiseRejection uint8
	VolumeCtrl     uint8
	Raw            []byte // trailing octets this module does not interpret
}

func (TerminalCapability) Kind() IEType { return IETerminalCapability }

// ExtHOIndicator is the EXT-HO-INDICATOR IE: a single flag bit.
type ExtHOIndicator struct {
	HandoverSupported bool
}

func (ExtHOIndicator) Kind() IEType { return IEExtendedHOIndicator }

func init() {
	register(IETerminalCapability, ieMeta{
		name:  "TERMINAL-CAPABILITY",
		parse: parseTerminalCapability,
		build: buildTerminalCapability,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEExtendedHOIndicator, ieMeta{
		name: "EXT-HO-INDICATOR",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IEExtendedHOIndicator, Reason: "empty content"}
			}
			return ExtHOIndicator{HandoverSupported: data[0]&0x01 != 0}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			h, ok := v.(ExtHOIndicator)
			if !ok {
				return nil, &ContentError{IE: IEExtendedHOIndicator, Reason: "wrong Go type"}
			}
			if h.HandoverSupported {
				return []byte{0x01}, nil
			}
			return []byte{0x00}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEEndToEndCompatibility, ieMeta{
		name:  "END-TO-END-COMPATIBILITY",
		parse: parseRawOctets(IEEndToEndCompatibility),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEIWUAttributes, ieMeta{
		name:  "IWU-ATTRIBUTES",
		parse: parseRawOctets(IEIWUAttributes),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IENetworkParameter, ieMeta{
		name:  "NETWORK-PARAMETER",
		parse: parseRawOctets(IENetworkParameter),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
}

func parseTerminalCapability(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IETerminalCapability, Reason: "short content"}
	}
	tc := TerminalCapability{
		Display: data[0] & 0x0f,
		Tone:    data[1] & 0x0f,
	}
	if len(data) > 2 {
		tc.Echo = data[2] & 0x03
		tc.NoiseRejection = (data[2] >> 2) & 0x01
		tc.VolumeCtrl = (data[2] >> 3) & 0x01
	}
	if len(data) > 3 {
		raw := make([]byte, len(data)-3)
		copy(raw, data[3:])
		tc.Raw = raw
	}
	return tc, nil
}

func buildTerminalCapability(dh *Handle, v IE) ([]byte, error) {
	tc, ok := v.(TerminalCapability)
	if !ok {
		return nil, &ContentError{IE: IETerminalCapability, Reason: "wrong Go type"}
	}
	out := []byte{tc.Display & 0x0f, tc.Tone & 0x0f}
	out = append(out, tc.Echo&0x03|tc.NoiseRejection<<2|tc.VolumeCtrl<<3)
	return append(out, tc.Raw...), nil
}
