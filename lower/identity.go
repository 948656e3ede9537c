// Package lower specifies the collaborators the NWK core consumes but
// does not implement: the event loop, timer
// service, DLC socket transport and allocator, plus the ARI/IPUI/TPUI
// identity bit-packing helpers. Only identity.go carries an
// implementation; the rest are interface boundaries.
package lower

import "fmt"

// ARIClass is the Access Rights Identifier class, selecting the bit
// layout of the class-specific fields.
type ARIClass uint8

const (
	ARIClassA ARIClass = iota // residential / private single- and small multi-cell
	ARIClassB                 // private PABX multi-cell
	ARIClassC                 // public single- and multi-cell
	ARIClassD                 // public DECT access to a GSM network
	ARIClassE                 // PP-to-PP direct communication
)

// ARI is the Access Rights Identifier, EN 300 175-6 subclause 5.2.
type ARI struct {
	Class ARIClass
	FPN   uint32 // Fixed Part Number
	FPS   uint32 // Fixed Part Subnumber (class-dependent width)
	EMC   uint16 // Equipment Manufacturer's Code (class A)
	EIC   uint16 // EMC-equivalent for class B
	POC   uint16 // Public Operator Code (class C)
	GOP   uint32 // Global Operator Code (class D)
	FIL   uint16 // Fixed part Installer's Code (class E)
}

// ariBitWidth is the total significant bit width of the ARI value for
// each class (EN 300 175-6, table 5.3).
var ariBitWidth = map[ARIClass]int{
	ARIClassA: 36,
	ARIClassB: 31,
	ARIClassC: 31,
	ARIClassD: 31,
	ARIClassE: 31,
}

// ParseARI unpacks a 64-bit left-aligned ARI value (class in bits 63-60,
// class fields packed directly below it; already shifted right out of
// its wire left-shift-by-1 form) into its class-specific fields.
func ParseARI(a uint64) (ARI, error) {
	class := ARIClass(a >> 60)
	width, ok := ariBitWidth[class]
	if !ok {
		return ARI{}, fmt.Errorf("lower: unknown ARI class %d", class)
	}
	rest := a & ((1 << 60) - 1)
	rest >>= uint(60 - width)

	ari := ARI{Class: class}
	switch class {
	case ARIClassA:
		ari.EMC = uint16(rest >> 20)
		ari.FPN = uint32(rest) & 0xfffff
	case ARIClassB:
		ari.EIC = uint16(rest >> 15)
		ari.FPN = uint32(rest>>4) & 0x7ff
		ari.FPS = uint32(rest) & 0xf
	case ARIClassC:
		ari.POC = uint16(rest >> 14)
		ari.FPN = uint32(rest>>1) & 0x1fff
		ari.FPS = uint32(rest) & 0x1
	case ARIClassD:
		ari.GOP = uint32(rest >> 6)
		ari.FPN = uint32(rest) & 0x3f
	case ARIClassE:
		ari.FIL = uint16(rest >> 20)
		ari.FPN = uint32(rest) & 0xfffff
	}
	return ari, nil
}

// BuildARI packs an ARI back into its left-aligned 64-bit value, the
// layout ParseARI reads (before the wire's left shift by one bit).
func BuildARI(ari ARI) (uint64, error) {
	width, ok := ariBitWidth[ari.Class]
	if !ok {
		return 0, fmt.Errorf("lower: unknown ARI class %d", ari.Class)
	}
	var rest uint64
	switch ari.Class {
	case ARIClassA:
		rest = uint64(ari.EMC)<<20 | uint64(ari.FPN&0xfffff)
	case ARIClassB:
		rest = uint64(ari.EIC)<<15 | uint64(ari.FPN&0x7ff)<<4 | uint64(ari.FPS&0xf)
	case ARIClassC:
		rest = uint64(ari.POC)<<14 | uint64(ari.FPN&0x1fff)<<1 | uint64(ari.FPS&0x1)
	case ARIClassD:
		rest = uint64(ari.GOP)<<6 | uint64(ari.FPN&0x3f)
	case ARIClassE:
		rest = uint64(ari.FIL)<<20 | uint64(ari.FPN&0xfffff)
	}
	return uint64(ari.Class)<<60 | rest<<uint(60-width), nil
}

// PARK is the Portable Access Rights Key: an FP's ARI truncated to a
// prefix length, bound to a PP's subscription.
type PARK struct {
	ARI ARI
	PLI uint8 // prefix length, in bits, of the ARI this PARK matches
}

// IPUIType selects the format of an International Portable User
// Identity's type-specific fields.
type IPUIType uint8

const (
	IPUITypeN IPUIType = iota // residential/default
	IPUITypeO                 // private
	IPUITypeP                 // public access service
	IPUITypeQ                 // public/general
	IPUITypeR                 // public/IMSI
	IPUITypeS                 // PSTN/ISDN
	IPUITypeT                 // private extended
	IPUITypeU                 // public/general
)

// IPEI is the International Portable Equipment Identity carried by a
// type-N IPUI.
type IPEI struct {
	EMC uint16 // Equipment Manufacturer Code
	PSN uint32 // Portable Equipment Serial Number, 20 bits
}

// IPUI is the International Portable User Identity, EN 300 175-6
// subclause 5.3. The PORTABLE-IDENTITY codec fills IPEI for type N and O
// for type O; every other type, R and S included, travels verbatim in
// Raw, and the codec does not fill the R or S fields.
type IPUI struct {
	Type IPUIType
	IPEI IPEI    // valid when Type == IPUITypeN
	O    uint64  // valid when Type == IPUITypeO
	R    uint64  // valid when Type == IPUITypeR (IMSI)
	S    uint64  // valid when Type == IPUITypeS
	Raw  []byte  // other types: type-specific bits, verbatim
}

// TPUIType selects the semantics of a Temporary Portable User Identity.
type TPUIType uint8

const (
	TPUIIndividualAssigned TPUIType = iota
	TPUIConnectionlessGroup
	TPUICallGroup
	TPUIIndividualDefault
	TPUIEmergency
)

// TPUI is the Temporary Portable User Identity assigned to a PP by its
// FP for the duration of a location area registration.
type TPUI struct {
	Type  TPUIType
	Value uint32 // width depends on Type: 20 bits (individual), 16 (group)
}

// ToTPUI derives the default individual TPUI from an IPUI's low bits,
// grounded on dect_ipui_to_tpui.
func (u IPUI) ToTPUI() TPUI {
	var v uint32
	switch u.Type {
	case IPUITypeN:
		v = u.IPEI.PSN & 0xfffff
	case IPUITypeO:
		v = uint32(u.O) & 0xfffff
	default:
		v = 0
	}
	return TPUI{Type: TPUIIndividualDefault, Value: v}
}
