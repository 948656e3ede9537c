package nwk

import "fmt"

// ie_display.go covers the four display/keypad IEs: SINGLE-DISPLAY and
// SINGLE-KEYPAD (double-octet-element, single-character form) and
// MULTI-DISPLAY/MULTI-KEYPAD (variable-length, arbitrary-length text),
// grounded on dect_sfmt_parse/build_single_display and
// dect_sfmt_parse/build_single_keypad. s_msg.c switches a DISPLAY/KEYPAD
// IE from its single form to its multi form purely on length, so the two
// forms share the same decoded Go type here; only the wire-level codec
// differs, and that is handled by header.go, not these functions.

// Display is the decoded content of SINGLE-DISPLAY or MULTI-DISPLAY.
type Display struct {
	Single bool
	Text   string
}

func (d Display) Kind() IEType {
	if d.Single {
		return IESingleDisplay
	}
	return IEMultiDisplay
}

// Keypad is the decoded content of SINGLE-KEYPAD or MULTI-KEYPAD.
type Keypad struct {
	Single bool
	Text   string
}

func (k Keypad) Kind() IEType {
	if k.Single {
		return IESingleKeypad
	}
	return IEMultiKeypad
}

func init() {
	register(IESingleDisplay, ieMeta{
		name: "SINGLE-DISPLAY",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IESingleDisplay, Reason: "empty content"}
			}
			return Display{Single: true, Text: string(data[:1])}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			d, ok := v.(Display)
			if !ok || len(d.Text) != 1 {
				return nil, &ContentError{IE: IESingleDisplay, Reason: "content must be exactly one character"}
			}
			return []byte(d.Text), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%q", v.(Display).Text) },
	})
	register(IEMultiDisplay, ieMeta{
		name: "MULTI-DISPLAY",
		parse: func(dh *Handle, data []byte) (IE, error) {
			return Display{Single: false, Text: string(data)}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			d, ok := v.(Display)
			if !ok {
				return nil, &ContentError{IE: IEMultiDisplay, Reason: "wrong Go type"}
			}
			return []byte(d.Text), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%q", v.(Display).Text) },
	})
	register(IESingleKeypad, ieMeta{
		name: "SINGLE-KEYPAD",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IESingleKeypad, Reason: "empty content"}
			}
			return Keypad{Single: true, Text: string(data[:1])}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			k, ok := v.(Keypad)
			if !ok || len(k.Text) != 1 {
				return nil, &ContentError{IE: IESingleKeypad, Reason: "content must be exactly one character"}
			}
			return []byte(k.Text), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%q", v.(Keypad).Text) },
	})
	register(IEMultiKeypad, ieMeta{
		name: "MULTI-KEYPAD",
		parse: func(dh *Handle, data []byte) (IE, error) {
			return Keypad{Single: false, Text: string(data)}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			k, ok := v.(Keypad)
			if !ok {
				return nil, &ContentError{IE: IEMultiKeypad, Reason: "wrong Go type"}
			}
			return []byte(k.Text), nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%q", v.(Keypad).Text) },
	})
}
