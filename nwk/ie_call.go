package nwk

import "fmt"

// ie_call.go covers the call-control-flavoured IEs: the four
// double-octet-element IEs BASIC-SERVICE/RELEASE-REASON/SIGNAL/
// TIMER-RESTART (single-value-octet form, grounded on
// dect_sfmt_build_basic_service and its siblings in s_msg.c), plus the
// variable-length call-attribute IEs used by CC descriptors.

// BasicService is the BASIC-SERVICE double-octet IE: the call's basic
// service and (low nibble) call class.
type BasicService struct {
	Service uint8 // bits 8-5: basic service, e.g. 0x0 = basic speech
	Class   uint8 // bits 4-1: call class
}

func (BasicService) Kind() IEType { return IEBasicService }

// ReleaseReason is the RELEASE-REASON double-octet IE.
type ReleaseReason struct {
	Reason uint8
}

func (ReleaseReason) Kind() IEType { return IEReleaseReason }

// Standard RELEASE-REASON codes, EN 300 175-5 table 7.39.
const (
	ReleaseNormal              uint8 = 0x00
	ReleaseUnexpectedMessage   uint8 = 0x01
	ReleaseTimer               uint8 = 0x02
	ReleaseUnknownTI           uint8 = 0x05
	ReleaseNoSetupOngoing      uint8 = 0x08
	ReleaseIncompatibleService uint8 = 0x19
	ReleaseFalseLCE            uint8 = 0x20
)

// Signal is the SIGNAL double-octet IE: an alerting/tone pattern.
type Signal struct {
	Value uint8
}

func (Signal) Kind() IEType { return IESignal }

// ServiceChangeMode is the single content octet of a SERVICE-CHANGE-INFO
// IE (currently carried as RawOctets): what CC-SERVICE-CHANGE is asking
// the peer to do, dect_service_change_modes.
const (
	ServiceChangeNone                    uint8 = 0x0
	ServiceChangeConnectionReversal      uint8 = 0x1
	ServiceChangeBandwidth               uint8 = 0x2
	ServiceChangeModulation              uint8 = 0x3
	ServiceChangeRerouting               uint8 = 0x4
	ServiceChangeBandwidthPlusModulation uint8 = 0x5
	ServiceChangeReroutingPlusBandwidth  uint8 = 0x6
	ServiceChangeBandwidthOrModulation   uint8 = 0x7
	ServiceChangeSuspend                 uint8 = 0x8
	ServiceChangeResume                  uint8 = 0x9
	ServiceChangeVoiceDataToData         uint8 = 0xa
	ServiceChangeVoiceDataToVoice        uint8 = 0xb
	ServiceChangeIWUAttributes           uint8 = 0xc
	ServiceChangeAudioCodec              uint8 = 0xd
	ServiceChangeBasicServiceAndIWUAttrs uint8 = 0xe
)

// ServiceChangeInfo builds the single-octet SERVICE-CHANGE-INFO content
// for mode, for callers that only need to name the mode rather than
// build a RawOctets value by hand.
func ServiceChangeInfo(mode uint8) RawOctets {
	return RawOctets{IEType: IEServiceChangeInfo, Content: []byte{mode}}
}

// Standard SIGNAL values, EN 300 175-5 table 7.41.
const (
	SignalDialToneOn     uint8 = 0x00
	SignalRingbackToneOn uint8 = 0x01
	SignalAlertingOn     uint8 = 0x40
	SignalAlertingOff    uint8 = 0x4f
)

// TimerRestart is the TIMER-RESTART double-octet IE: whether the peer
// should restart or stop its running call timer.
type TimerRestart struct {
	Restart bool // false selects "stop"
}

func (TimerRestart) Kind() IEType { return IETimerRestart }

func init() {
	register(IEBasicService, ieMeta{
		name: "BASIC-SERVICE",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IEBasicService, Reason: "empty content"}
			}
			return BasicService{Service: data[0] >> 4, Class: data[0] & 0x0f}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			bs, ok := v.(BasicService)
			if !ok {
				return nil, &ContentError{IE: IEBasicService, Reason: "wrong Go type"}
			}
			return []byte{bs.Service<<4 | bs.Class&0x0f}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEReleaseReason, ieMeta{
		name: "RELEASE-REASON",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IEReleaseReason, Reason: "empty content"}
			}
			return ReleaseReason{Reason: data[0]}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			rr, ok := v.(ReleaseReason)
			if !ok {
				return nil, &ContentError{IE: IEReleaseReason, Reason: "wrong Go type"}
			}
			return []byte{rr.Reason}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IESignal, ieMeta{
		name: "SIGNAL",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IESignal, Reason: "empty content"}
			}
			return Signal{Value: data[0]}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			s, ok := v.(Signal)
			if !ok {
				return nil, &ContentError{IE: IESignal, Reason: "wrong Go type"}
			}
			return []byte{s.Value}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IETimerRestart, ieMeta{
		name: "TIMER-RESTART",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IETimerRestart, Reason: "empty content"}
			}
			return TimerRestart{Restart: data[0]&0x01 == 0}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			tr, ok := v.(TimerRestart)
			if !ok {
				return nil, &ContentError{IE: IETimerRestart, Reason: "wrong Go type"}
			}
			if tr.Restart {
				return []byte{0x00}, nil
			}
			return []byte{0x01}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})

	register(IEDuration, ieMeta{
		name:  "DURATION",
		parse: parseDuration,
		build: buildDuration,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEProgressIndicator, ieMeta{
		name:  "PROGRESS-INDICATOR",
		parse: parseProgressIndicator,
		build: buildProgressIndicator,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IECallAttributes, ieMeta{
		name:  "CALL-ATTRIBUTES",
		parse: parseRawOctets(IECallAttributes),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEConnectionAttributes, ieMeta{
		name:  "CONNECTION-ATTRIBUTES",
		parse: parseRawOctets(IEConnectionAttributes),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEConnectionIdentity, ieMeta{
		name:  "CONNECTION-IDENTITY",
		parse: parseRawOctets(IEConnectionIdentity),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEServiceChangeInfo, ieMeta{
		name:  "SERVICE-CHANGE-INFO",
		parse: parseRawOctets(IEServiceChangeInfo),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IEEventsNotification, ieMeta{
		name:  "EVENTS-NOTIFICATION",
		parse: parseRawOctets(IEEventsNotification),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
	register(IECallInformation, ieMeta{
		name:  "CALL-INFORMATION",
		parse: parseRawOctets(IECallInformation),
		build: buildRawOctets,
		dump:  dumpRawOctets,
	})
}

// Duration is the DURATION IE: a timer-restart or pause interval
// expressed in seconds.
type Duration struct {
	Lock    bool // true: "locked"/extended duration, false: restart duration
	Seconds uint16
}

func (Duration) Kind() IEType { return IEDuration }

func parseDuration(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IEDuration, Reason: "short content"}
	}
	return Duration{Lock: data[0]&0x80 != 0, Seconds: uint16(data[0]&0x7f)<<8 | uint16(data[1])}, nil
}

func buildDuration(dh *Handle, v IE) ([]byte, error) {
	d, ok := v.(Duration)
	if !ok {
		return nil, &ContentError{IE: IEDuration, Reason: "wrong Go type"}
	}
	lock := byte(0)
	if d.Lock {
		lock = 0x80
	}
	return []byte{lock | byte(d.Seconds>>8)&0x7f, byte(d.Seconds)}, nil
}

// ProgressIndicator is the PROGRESS-INDICATOR IE.
type ProgressIndicator struct {
	Location uint8
	Progress uint8
}

func (ProgressIndicator) Kind() IEType { return IEProgressIndicator }

func parseProgressIndicator(dh *Handle, data []byte) (IE, error) {
	if len(data) < 2 {
		return nil, &ContentError{IE: IEProgressIndicator, Reason: "short content"}
	}
	return ProgressIndicator{Location: data[0] & 0x0f, Progress: data[1] & 0x7f}, nil
}

func buildProgressIndicator(dh *Handle, v IE) ([]byte, error) {
	pi, ok := v.(ProgressIndicator)
	if !ok {
		return nil, &ContentError{IE: IEProgressIndicator, Reason: "wrong Go type"}
	}
	return []byte{0x80 | pi.Location&0x0f, 0x80 | pi.Progress&0x7f}, nil
}

// RawOctets is the fallback representation for variable-length IEs whose
// internal structure the protocol layers treat opaquely: CC carries them
// end to end (or mux-only, for MM's cipher/info exchanges) without
// interpreting the content.
type RawOctets struct {
	IEType  IEType
	Content []byte
}

func (r RawOctets) Kind() IEType { return r.IEType }

func parseRawOctets(t IEType) func(dh *Handle, data []byte) (IE, error) {
	return func(dh *Handle, data []byte) (IE, error) {
		cp := make([]byte, len(data))
		copy(cp, data)
		return RawOctets{IEType: t, Content: cp}, nil
	}
}

func buildRawOctets(dh *Handle, v IE) ([]byte, error) {
	ro, ok := v.(RawOctets)
	if !ok {
		return nil, &ContentError{Reason: "wrong Go type for raw-octet IE"}
	}
	return ro.Content, nil
}

func dumpRawOctets(v IE) string {
	ro, ok := v.(RawOctets)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%d bytes", len(ro.Content))
}
