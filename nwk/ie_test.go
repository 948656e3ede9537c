package nwk

import (
	"reflect"
	"testing"

	"github.com/rob-gra/go-dect/lower"
)

func roundTrip(t *testing.T, dh *Handle, v IE) IE {
	t.Helper()
	content, err := dh.Build(v)
	if err != nil {
		t.Fatalf("Build(%v): %v", v, err)
	}
	got, err := dh.Parse(v.Kind(), content)
	if err != nil {
		t.Fatalf("Parse(%v, %v): %v", v.Kind(), content, err)
	}
	return got
}

func TestIERoundTrip(t *testing.T) {
	dh := &Handle{Mode: ModeFP}

	cases := []IE{
		BasicService{Service: 0x0, Class: 0x1},
		ReleaseReason{Reason: ReleaseNormal},
		Signal{Value: SignalAlertingOn},
		TimerRestart{Restart: true},
		Duration{Lock: true, Seconds: 120},
		ProgressIndicator{Location: 1, Progress: 2},
		CalledPartyNumber{Type: NumberNational, NumberingPlan: 1, Digits: "5551234"},
		CallingPartyNumber{Type: NumberInternational, NumberingPlan: 1, Presentation: 0, Screening: 1, Digits: "441234"},
		Alphanumeric{CharacterSet: 1, Text: "HELLO"},
		SegmentedInfo{FirstSegment: true, MoreToCome: true, Content: []byte("abc")},
		Display{Single: true, Text: "x"},
		Display{Single: false, Text: "a longer display string"},
		Keypad{Single: true, Text: "5"},
		TimeDate{Year: 26, Month: 7, Day: 30, Hour: 12, Minute: 0, Second: 0, Interpretation: 1},
		LocationArea{IsLocationAreaLevel: true, Level: 5},
		RepeatIndicator{ListType: RepeatPrioritized},
		ModelIdentifier{Text: "HANDSET-1"},
		CodecList{Negotiation: 1, Codecs: []uint8{0x1, 0x2}},
		ExtHOIndicator{HandoverSupported: true},
		AuthType{Algorithm: 1, AuthID: 1, ProcessKey: 0, Flags: 0x3, KeyNumber: 2, KeyType: 1},
		AllocationType{Algorithm: 1, KeyNumber: 3, KeyType: 1},
		CipherInfo{Enable: true, Algorithm: 1, KeyType: 1, KeyNumber: 2},
		NWKAssignedIdentity{TPUI: lower.TPUI{Value: 0x112233}, Class: 1},
		FixedIdentity{PARK: lower.PARK{ARI: lower.ARI{Class: lower.ARIClassA, EMC: 0x1234, FPN: 0x56789}, PLI: 10}},
	}

	for _, original := range cases {
		got := roundTrip(t, dh, original)
		if !reflect.DeepEqual(got, original) {
			t.Errorf("round trip mismatch for %#v: got %#v", original, got)
		}
	}
}

func TestPortableIdentityRoundTripIPUI(t *testing.T) {
	dh := &Handle{Mode: ModePP}
	original := PortableIdentity{
		Kind: IdentityIPUI,
		IPUI: lower.IPUI{Type: lower.IPUITypeN, IPEI: lower.IPEI{EMC: 0x0a1b, PSN: 0x2c3d4}},
	}
	got := roundTrip(t, dh, original)
	if !reflect.DeepEqual(got, original) {
		t.Errorf("IPUI round trip mismatch: got %#v, want %#v", got, original)
	}
}

func TestARIRoundTrip(t *testing.T) {
	cases := []lower.ARI{
		{Class: lower.ARIClassA, EMC: 0x0abc, FPN: 0x23456},
		{Class: lower.ARIClassB, EIC: 0x1234, FPN: 0x345, FPS: 0x3},
		{Class: lower.ARIClassC, POC: 0x2345, FPN: 0x1234, FPS: 1},
		{Class: lower.ARIClassD, GOP: 0x1ffffff, FPN: 0x3f},
		{Class: lower.ARIClassE, FIL: 0x03ff, FPN: 0xabcde},
	}
	for _, ari := range cases {
		raw, err := lower.BuildARI(ari)
		if err != nil {
			t.Fatalf("BuildARI(%+v): %v", ari, err)
		}
		got, err := lower.ParseARI(raw)
		if err != nil {
			t.Fatalf("ParseARI: %v", err)
		}
		if got != ari {
			t.Errorf("ARI round trip mismatch: got %+v, want %+v", got, ari)
		}
	}
}

func TestUnsupportedIE(t *testing.T) {
	dh := &Handle{Mode: ModeFP}
	_, err := dh.Parse(IEType(0xee), []byte{0x01})
	if err == nil {
		t.Fatal("expected error for unregistered IE")
	}
	if _, ok := err.(*UnsupportedIEError); !ok {
		t.Fatalf("got error type %T, want *UnsupportedIEError", err)
	}
}
