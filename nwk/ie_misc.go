package nwk

import "fmt"

// ie_misc.go covers the remaining leaf IEs: IWU-TO-IWU, MODEL-IDENTIFIER,
// ESCAPE-TO-PROPRIETARY, CODEC-LIST, FACILITY, ESCAPE-FOR-EXTENSION and
// REPEAT-INDICATOR (the one genuinely single-octet fixed-length IE,
// explicit edge case: its low nibble carries the list type of the
// group it precedes, grounded on dect_sfmt_parse/build_repeat_indicator).

// RepeatIndicatorType is the list semantics a REPEAT-INDICATOR IE
// declares for the IE group that follows it.
type RepeatIndicatorType uint8

const (
	RepeatNonPrioritized RepeatIndicatorType = 0x1
	RepeatPrioritized    RepeatIndicatorType = 0x2
)

// RepeatIndicator is the REPEAT-INDICATOR IE.
type RepeatIndicator struct {
	ListType RepeatIndicatorType
}

func (RepeatIndicator) Kind() IEType { return IERepeatIndicator }

// IWUToIWU is the IWU-TO-IWU IE: opaque inter-working-unit signalling
// information passed end to end, untouched, by the NWK layer.
type IWUToIWU struct {
	ProtocolDiscriminator uint8
	Content               []byte
}

func (IWUToIWU) Kind() IEType { return IEIWUToIWU }

// ModelIdentifier is the MODEL-IDENTIFIER IE: a vendor-defined terminal
// model string.
type ModelIdentifier struct {
	Text string
}

func (ModelIdentifier) Kind() IEType { return IEModelIdentifier }

// CodecList is the CODEC-LIST IE: the ordered set of audio codecs a
// terminal is willing to negotiate. The cc entity's outbound SETUP does
// not carry it, and config.HandleConfig.OffersWidebandCodec is not
// consulted when building one.
type CodecList struct {
	Negotiation uint8
	Codecs      []uint8
}

func (CodecList) Kind() IEType { return IECodecList }

func init() {
	register(IERepeatIndicator, ieMeta{
		name: "REPEAT-INDICATOR",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IERepeatIndicator, Reason: "empty content"}
			}
			lt := RepeatIndicatorType(data[0] & 0x0f)
			if lt != RepeatNonPrioritized && lt != RepeatPrioritized {
				return nil, &ContentError{IE: IERepeatIndicator, Reason: "unsupported list type"}
			}
			return RepeatIndicator{ListType: lt}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			ri, ok := v.(RepeatIndicator)
			if !ok {
				return nil, &ContentError{IE: IERepeatIndicator, Reason: "wrong Go type"}
			}
			return []byte{byte(ri.ListType) & 0x0f}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEIWUToIWU, ieMeta{
		name: "IWU-TO-IWU",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IEIWUToIWU, Reason: "empty content"}
			}
			content := make([]byte, len(data)-1)
			copy(content, data[1:])
			return IWUToIWU{ProtocolDiscriminator: data[0], Content: content}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			i, ok := v.(IWUToIWU)
			if !ok {
				return nil, &ContentError{IE: IEIWUToIWU, Reason: "wrong Go type"}
			}
			return append([]byte{i.ProtocolDiscriminator}, i.Content...), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%d bytes", len(v.(IWUToIWU).Content)) },
	})
	register(IEModelIdentifier, ieMeta{
		name: "MODEL-IDENTIFIER",
		parse: func(dh *Handle, data []byte) (IE, error) {
			return ModelIdentifier{Text: string(data)}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			m, ok := v.(ModelIdentifier)
			if !ok {
				return nil, &ContentError{IE: IEModelIdentifier, Reason: "wrong Go type"}
			}
			return []byte(m.Text), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%q", v.(ModelIdentifier).Text) },
	})
	register(IECodecList, ieMeta{
		name: "CODEC-LIST",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IECodecList, Reason: "empty content"}
			}
			codecs := make([]uint8, len(data)-1)
			copy(codecs, data[1:])
			return CodecList{Negotiation: data[0], Codecs: codecs}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			c, ok := v.(CodecList)
			if !ok {
				return nil, &ContentError{IE: IECodecList, Reason: "wrong Go type"}
			}
			return append([]byte{c.Negotiation}, c.Codecs...), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEFacility, ieMeta{
		name:  "FACILITY",
		parse: parseRawOctets(IEFacility),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEEscapeToProprietary, ieMeta{
		name:  "ESCAPE-TO-PROPRIETARY",
		parse: parseRawOctets(IEEscapeToProprietary),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEEscapeForExtension, ieMeta{
		name:  "ESCAPE-FOR-EXTENSION",
		parse: parseRawOctets(IEEscapeForExtension),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
}
