package nwk

import (
	"testing"

	"github.com/rob-gra/go-dect/lower"
)

func TestBuildThenParseMessageRoundTrip(t *testing.T) {
	dh := &Handle{Mode: ModePP}

	values := map[IEType][]IE{
		IEBasicService:       {BasicService{Service: 0, Class: 1}},
		IECalledPartyNumber:  {CalledPartyNumber{Type: NumberNational, NumberingPlan: 1, Digits: "100"}},
		IEPortableIdentity:   {PortableIdentity{Kind: IdentityTPUI, TPUI: lower.TPUI{Value: 0x0a0b0c}}},
	}

	wire, err := dh.BuildMessage(CCSetupDesc, values, true)
	if err != nil {
		t.Fatalf("BuildMessage: %v", err)
	}

	dhFP := &Handle{Mode: ModeFP}
	parsed, err := dhFP.ParseMessage(CCSetupDesc, wire, false)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}

	found := map[IEType]bool{}
	for _, p := range parsed {
		found[p.Desc.IE] = true
	}
	if !found[IEBasicService] {
		t.Error("BASIC-SERVICE missing from parsed result")
	}
	if !found[IECalledPartyNumber] {
		t.Error("CALLED-PARTY-NUMBER missing from parsed result")
	}
}

func TestParseMessageMandatoryMissing(t *testing.T) {
	dh := &Handle{Mode: ModeFP}
	// CC-SETUP requires BASIC-SERVICE in both directions; omit it.
	wire, err := BuildIE(nil, IECalledPartyNumber, []byte{0x81, '1'})
	if err != nil {
		t.Fatalf("BuildIE: %v", err)
	}
	if _, err := dh.ParseMessage(CCSetupDesc, wire, false); err == nil {
		t.Fatal("expected MandatoryIEMissingError")
	} else if _, ok := err.(*MandatoryIEMissingError); !ok {
		t.Fatalf("got error type %T, want *MandatoryIEMissingError", err)
	}
}

func TestBuildMessageForbiddenInDirection(t *testing.T) {
	dh := &Handle{Mode: ModeFP}
	// PORTABLE-IDENTITY is PPToFP only in CC-SETUP; sending FP->PP must fail.
	values := map[IEType][]IE{
		IEBasicService:     {BasicService{Service: 0, Class: 1}},
		IEPortableIdentity: {PortableIdentity{Kind: IdentityTPUI, TPUI: lower.TPUI{Value: 1}}},
	}
	if _, err := dh.BuildMessage(CCSetupDesc, values, true); err == nil {
		t.Fatal("expected InvalidIEError for forbidden direction")
	}
}

func TestBuildMessageRepeatIndicatorCardinality(t *testing.T) {
	dh := &Handle{Mode: ModePP}

	iwu := func(n int) []IE {
		out := make([]IE, n)
		for i := range out {
			out[i] = IWUToIWU{ProtocolDiscriminator: 0, Content: []byte{byte(i)}}
		}
		return out
	}
	countByType := func(wire []byte, ie IEType) int {
		n := 0
		pos := 0
		for pos < len(wire) {
			raw, err := ParseIEHeader(wire[pos:])
			if err != nil {
				t.Fatalf("ParseIEHeader: %v", err)
			}
			if raw.ID == ie {
				n++
			}
			pos += raw.WireLen
		}
		return n
	}

	// Zero members: neither the indicator nor the group is built.
	wire, err := dh.BuildMessage(CCInfoDesc, nil, true)
	if err != nil {
		t.Fatalf("BuildMessage (0 members): %v", err)
	}
	if n := countByType(wire, IERepeatIndicator); n != 0 {
		t.Fatalf("got %d REPEAT-INDICATOR occurrences for 0 members, want 0", n)
	}
	if n := countByType(wire, IEIWUToIWU); n != 0 {
		t.Fatalf("got %d IWU-TO-IWU occurrences for 0 members, want 0", n)
	}

	// One member: the group builds, but still no indicator.
	wire, err = dh.BuildMessage(CCInfoDesc, map[IEType][]IE{IEIWUToIWU: iwu(1)}, true)
	if err != nil {
		t.Fatalf("BuildMessage (1 member): %v", err)
	}
	if n := countByType(wire, IERepeatIndicator); n != 0 {
		t.Fatalf("got %d REPEAT-INDICATOR occurrences for 1 member, want 0", n)
	}
	if n := countByType(wire, IEIWUToIWU); n != 1 {
		t.Fatalf("got %d IWU-TO-IWU occurrences for 1 member, want 1", n)
	}

	// Two or more members: the indicator is built ahead of the group.
	wire, err = dh.BuildMessage(CCInfoDesc, map[IEType][]IE{IEIWUToIWU: iwu(2)}, true)
	if err != nil {
		t.Fatalf("BuildMessage (2 members): %v", err)
	}
	if n := countByType(wire, IERepeatIndicator); n != 1 {
		t.Fatalf("got %d REPEAT-INDICATOR occurrences for 2 members, want 1", n)
	}
	if n := countByType(wire, IEIWUToIWU); n != 2 {
		t.Fatalf("got %d IWU-TO-IWU occurrences for 2 members, want 2", n)
	}
}

func TestReleaseDescriptorRequiresReleaseReasonBothWays(t *testing.T) {
	for _, ie := range CCReleaseDesc.IEs {
		if ie.IE == IEReleaseReason {
			if ie.FPToPP != StatusMandatory || ie.PPToFP != StatusMandatory {
				t.Fatalf("RELEASE-REASON must be mandatory both ways in CC-RELEASE, got %+v", ie)
			}
			return
		}
	}
	t.Fatal("RELEASE-REASON not found in CC-RELEASE descriptor")
}
