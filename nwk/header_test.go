package nwk

import (
	"bytes"
	"testing"
)

func TestParseIEHeaderVariableLength(t *testing.T) {
	data := []byte{byte(IECalledPartyNumber), 3, 0x81, '1', '2'}
	raw, err := ParseIEHeader(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.ID != IECalledPartyNumber {
		t.Fatalf("got ID %v, want IECalledPartyNumber", raw.ID)
	}
	if raw.WireLen != 5 {
		t.Fatalf("got WireLen %d, want 5", raw.WireLen)
	}
	if !bytes.Equal(raw.Content, []byte{0x81, '1', '2'}) {
		t.Fatalf("got content %v", raw.Content)
	}
}

func TestParseIEHeaderDoubleOctet(t *testing.T) {
	for _, tc := range []struct {
		name string
		id   IEType
	}{
		{"single-display", IESingleDisplay},
		{"basic-service", IEBasicService},
		{"timer-restart", IETimerRestart},
	} {
		t.Run(tc.name, func(t *testing.T) {
			built, err := BuildIE(nil, tc.id, []byte{0x05})
			if err != nil {
				t.Fatalf("BuildIE: %v", err)
			}
			raw, err := ParseIEHeader(built)
			if err != nil {
				t.Fatalf("ParseIEHeader: %v", err)
			}
			if raw.ID != tc.id {
				t.Fatalf("got ID %v, want %v", raw.ID, tc.id)
			}
			if raw.WireLen != 2 {
				t.Fatalf("got WireLen %d, want 2", raw.WireLen)
			}
			if raw.Content[0] != 0x05 {
				t.Fatalf("got content %v", raw.Content)
			}
		})
	}
}

func TestParseIEHeaderRepeatIndicator(t *testing.T) {
	built, err := BuildIE(nil, IERepeatIndicator, []byte{byte(RepeatPrioritized)})
	if err != nil {
		t.Fatalf("BuildIE: %v", err)
	}
	if len(built) != 1 {
		t.Fatalf("REPEAT-INDICATOR must be 1 octet, got %d", len(built))
	}
	raw, err := ParseIEHeader(built)
	if err != nil {
		t.Fatalf("ParseIEHeader: %v", err)
	}
	if raw.ID != IERepeatIndicator || raw.WireLen != 1 {
		t.Fatalf("got %+v", raw)
	}
	if raw.Content[0]&0x0f != byte(RepeatPrioritized) {
		t.Fatalf("got list type %v", raw.Content[0]&0x0f)
	}
}

func TestParseIEHeaderTruncated(t *testing.T) {
	cases := [][]byte{
		{},
		{byte(IECalledPartyNumber)},
		{byte(IECalledPartyNumber), 5, 0x01},
		{0xf0},
	}
	for i, data := range cases {
		if _, err := ParseIEHeader(data); err == nil {
			t.Errorf("case %d: expected error for %v", i, data)
		}
	}
}

func TestBuildIEContentLengthMismatch(t *testing.T) {
	if _, err := BuildIE(nil, IESingleDisplay, []byte{'a', 'b'}); err == nil {
		t.Fatal("expected error for oversized double-octet content")
	}
	if _, err := BuildIE(nil, IERepeatIndicator, nil); err == nil {
		t.Fatal("expected error for empty REPEAT-INDICATOR content")
	}
}

func TestIsFixedLength(t *testing.T) {
	if !IsFixedLength(IERepeatIndicator) {
		t.Error("REPEAT-INDICATOR should be fixed length")
	}
	if !IsFixedLength(IESignal) {
		t.Error("SIGNAL should be fixed length (double-octet form)")
	}
	if IsFixedLength(IEMultiDisplay) {
		t.Error("MULTI-DISPLAY must be variable length")
	}
	if IsFixedLength(IECalledPartyNumber) {
		t.Error("CALLED-PARTY-NUMBER must be variable length")
	}
}
