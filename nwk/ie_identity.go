package nwk

import (
	"fmt"

	"github.com/rob-gra/go-dect/lower"
)

// ie_identity.go covers the three identity-carrying IEs:
// PORTABLE-IDENTITY, FIXED-IDENTITY and NWK-ASSIGNED-IDENTITY. All three
// share the same type-discriminator-octet-then-length-field shape, so
// they share a decode helper grounded on dect_parse_identity (s_msg.c).

// IdentityKind is the type discriminator octet of an identity IE,
// selecting which of the union fields in PortableIdentity/FixedIdentity
// is populated.
type IdentityKind uint8

const (
	IdentityIPUI IdentityKind = 0x05
	IdentityIPEI IdentityKind = 0x06
	IdentityTPUI IdentityKind = 0x07
)

// PortableIdentity is the PORTABLE-IDENTITY IE: the PP's IPUI, or (rare)
// its TPUI, presented to identify itself.
type PortableIdentity struct {
	Kind IdentityKind
	IPUI lower.IPUI
	TPUI lower.TPUI
}

func (PortableIdentity) Kind() IEType { return IEPortableIdentity }

// FixedIdentity is the FIXED-IDENTITY IE: the FP's ARI, carried as a
// PARK-shaped (ARI + prefix length) value edge-case note that
// the PP compares only the advertised prefix.
type FixedIdentity struct {
	PARK lower.PARK
}

func (FixedIdentity) Kind() IEType { return IEFixedIdentity }

// NWKAssignedIdentity is the NWK-ASSIGNED-IDENTITY IE: a TPUI the FP
// assigns to a PP, tagged with the assignment's validity class.
type NWKAssignedIdentity struct {
	TPUI  lower.TPUI
	Class uint8 // assignment validity class
}

func (NWKAssignedIdentity) Kind() IEType { return IENWKAssignedIdentity }

func init() {
	register(IEPortableIdentity, ieMeta{
		name:  "PORTABLE-IDENTITY",
		parse: parsePortableIdentity,
		build: buildPortableIdentity,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEFixedIdentity, ieMeta{
		name:  "FIXED-IDENTITY",
		parse: parseFixedIdentity,
		build: buildFixedIdentity,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IENWKAssignedIdentity, ieMeta{
		name:  "NWK-ASSIGNED-IDENTITY",
		parse: parseNWKAssignedIdentity,
		build: buildNWKAssignedIdentity,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
}

func parsePortableIdentity(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IEPortableIdentity, Reason: "short content"}
	}
	kind := IdentityKind(data[0] >> 2)
	length := int(data[0]&0x03)<<8 | int(data[1])
	body := data[2:]
	if len(body) < (length+7)/8 {
		return nil, &ContentError{IE: IEPortableIdentity, Reason: "length field exceeds content"}
	}

	switch kind {
	case IdentityIPUI:
		ipui, err := decodeIPUI(body, length)
		if err != nil {
			return nil, &ContentError{IE: IEPortableIdentity, Reason: err.Error()}
		}
		return PortableIdentity{Kind: kind, IPUI: ipui}, nil
	case IdentityTPUI:
		if len(body) < 3 {
			return nil, &ContentError{IE: IEPortableIdentity, Reason: "short TPUI"}
		}
		return PortableIdentity{Kind: kind, TPUI: lower.TPUI{Value: uint32(body[0])<<16 | uint32(body[1])<<8 | uint32(body[2])}}, nil
	default:
		return nil, &ContentError{IE: IEPortableIdentity, Reason: "unsupported identity kind"}
	}
}

func buildPortableIdentity(dh *Handle, v IE) ([]byte, error) {
	pi, ok := v.(PortableIdentity)
	if !ok {
		return nil, &ContentError{IE: IEPortableIdentity, Reason: "wrong Go type"}
	}
	switch pi.Kind {
	case IdentityIPUI:
		body, bits, err := encodeIPUI(pi.IPUI)
		if err != nil {
			return nil, &ContentError{IE: IEPortableIdentity, Reason: err.Error()}
		}
		header := byte(pi.Kind)<<2 | byte((bits>>8)&0x03)
		return append([]byte{header, byte(bits & 0xff)}, body...), nil
	case IdentityTPUI:
		header := byte(pi.Kind) << 2
		v := pi.TPUI.Value
		return []byte{header, 24, byte(v >> 16), byte(v >> 8), byte(v)}, nil
	default:
		return nil, &ContentError{IE: IEPortableIdentity, Reason: "unsupported identity kind"}
	}
}

func parseFixedIdentity(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: "short content"}
	}
	kind := IdentityKind(data[0] >> 2)
	if kind != IdentityIPEI && kind != 0x01 {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: "unsupported identity kind"}
	}
	length := int(data[0]&0x03)<<8 | int(data[1])
	body := data[2:]
	if len(body) < 5 {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: "short ARI/PLI body"}
	}
	var raw uint64
	for i := 0; i < 5; i++ {
		raw = raw<<8 | uint64(body[i])
	}
	raw = raw << 24 >> 1
	ari, err := lower.ParseARI(raw)
	if err != nil {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: err.Error()}
	}
	return FixedIdentity{PARK: lower.PARK{ARI: ari, PLI: uint8(length)}}, nil
}

func buildFixedIdentity(dh *Handle, v IE) ([]byte, error) {
	fi, ok := v.(FixedIdentity)
	if !ok {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: "wrong Go type"}
	}
	raw, err := lower.BuildARI(fi.PARK.ARI)
	if err != nil {
		return nil, &ContentError{IE: IEFixedIdentity, Reason: err.Error()}
	}
	// The wire carries the top five octets of the ARI shifted left by one bit.
	raw <<= 1
	header := byte(IdentityIPEI)<<2 | byte((fi.PARK.PLI>>8)&0x03)
	out := []byte{header, fi.PARK.PLI}
	for i := 4; i >= 0; i-- {
		out = append(out, byte(raw>>(uint(i)*8+24)))
	}
	return out, nil
}

func parseNWKAssignedIdentity(dh *Handle, data []byte) (IE, error) {
	if len(data) < 5 {
		return nil, &ContentError{IE: IENWKAssignedIdentity, Reason: "short content"}
	}
	class := data[0] & 0x1f
	v := uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	return NWKAssignedIdentity{TPUI: lower.TPUI{Value: v}, Class: class}, nil
}

func buildNWKAssignedIdentity(dh *Handle, v IE) ([]byte, error) {
	na, ok := v.(NWKAssignedIdentity)
	if !ok {
		return nil, &ContentError{IE: IENWKAssignedIdentity, Reason: "wrong Go type"}
	}
	val := na.TPUI.Value
	return []byte{na.Class & 0x1f, byte(val >> 16), byte(val >> 8), byte(val), 0}, nil
}

// decodeIPUI decodes an IPUI from its type octet onward; length is the
// IE's declared bit length of the whole identity (type field included).
func decodeIPUI(body []byte, length int) (lower.IPUI, error) {
	if len(body) < 1 {
		return lower.IPUI{}, fmt.Errorf("empty IPUI body")
	}
	t := lower.IPUIType(body[0] >> 4)
	switch t {
	case lower.IPUITypeN:
		if len(body) < 5 {
			return lower.IPUI{}, fmt.Errorf("short type-N IPUI")
		}
		emc := uint16(body[0]&0x0f)<<12 | uint16(body[1])<<4 | uint16(body[2]>>4)
		psn := uint32(body[2]&0x0f)<<16 | uint32(body[3])<<8 | uint32(body[4])
		return lower.IPUI{Type: t, IPEI: lower.IPEI{EMC: emc, PSN: psn}}, nil
	case lower.IPUITypeO:
		if len(body) < 8 {
			return lower.IPUI{}, fmt.Errorf("short type-O IPUI")
		}
		o := uint64(body[0] & 0x0f)
		for _, b := range body[1:8] {
			o = o<<8 | uint64(b)
		}
		return lower.IPUI{Type: t, O: o}, nil
	default:
		raw := make([]byte, len(body))
		copy(raw, body)
		return lower.IPUI{Type: t, Raw: raw}, nil
	}
}

func encodeIPUI(u lower.IPUI) ([]byte, int, error) {
	switch u.Type {
	case lower.IPUITypeN:
		out := make([]byte, 5)
		out[0] = byte(u.Type)<<4 | byte(u.IPEI.EMC>>12)&0x0f
		out[1] = byte(u.IPEI.EMC >> 4)
		out[2] = byte(u.IPEI.EMC<<4) | byte(u.IPEI.PSN>>16)&0x0f
		out[3] = byte(u.IPEI.PSN >> 8)
		out[4] = byte(u.IPEI.PSN)
		return out, 40, nil
	case lower.IPUITypeO:
		out := make([]byte, 8)
		out[0] = byte(u.Type)<<4 | byte(u.O>>56)&0x0f
		for i := 1; i < 8; i++ {
			out[i] = byte(u.O >> (uint(7-i) * 8))
		}
		return out, 64, nil
	default:
		if len(u.Raw) == 0 {
			return nil, 0, fmt.Errorf("no raw payload for IPUI type %d", u.Type)
		}
		return u.Raw, len(u.Raw) * 8, nil
	}
}
