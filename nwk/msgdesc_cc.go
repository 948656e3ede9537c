package nwk

// msgdesc_cc.go is the Call Control message descriptor table, the Go
// counterpart of the DECT_SFMT_MSG_DESC(cc_*, ...) tables in the
// original's cc.c: one ordered IEDesc slice per CC message type,
// consulted by ParseMessage/BuildMessage.

// CC message type octets, EN 300 175-5 subclause 7.4.1 (protocol
// discriminator PDCallControl).
const (
	MsgCCSetup          uint8 = 0x01
	MsgCCCallProc       uint8 = 0x02
	MsgCCSetupAck       uint8 = 0x03
	MsgCCAlerting       uint8 = 0x04
	MsgCCConnect        uint8 = 0x05
	MsgCCConnectAck     uint8 = 0x06
	MsgCCRelease        uint8 = 0x07
	MsgCCReleaseCom     uint8 = 0x08
	MsgCCServiceChange  uint8 = 0x09
	MsgCCServiceAccept  uint8 = 0x0a
	MsgCCServiceReject  uint8 = 0x0b
	MsgCCInfo           uint8 = 0x0c
	MsgCCIwuInfo        uint8 = 0x0d
)

// CCSetupDesc is CC-SETUP's descriptor, grounded on cc_setup_msg_desc:
// the PP always supplies BASIC-SERVICE and may name a called number; the
// FP, on a second (e.g. broadcast-paged) SETUP, mirrors back identities.
var CCSetupDesc = &MsgDesc{
	Name: "CC-SETUP",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IEFixedIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IENWKAssignedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEBasicService, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
		{IE: IERepeatIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEIWUToIWU, PPToFP: StatusOptional, FPToPP: StatusOptional, Flag: FlagRepeat},
		{IE: IECallingPartyNumber, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IECalledPartyNumber, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IECalledPartySubaddress, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IETerminalCapability, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IEEndToEndCompatibility, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IECodecList, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

// CCCallProcDesc mirrors cc_call_proc_msg_desc.
var CCCallProcDesc = &MsgDesc{
	Name: "CC-CALL-PROCEEDING",
	IEs: []IEDesc{
		{IE: IEProgressIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEDuration, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCSetupAckDesc = &MsgDesc{
	Name: "CC-SETUP-ACK",
	IEs: []IEDesc{
		{IE: IEDuration, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEProgressIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCAlertingDesc = &MsgDesc{
	Name: "CC-ALERTING",
	IEs: []IEDesc{
		{IE: IEProgressIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IESignal, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCConnectDesc = &MsgDesc{
	Name: "CC-CONNECT",
	IEs: []IEDesc{
		{IE: IEConnectionIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEConnectionAttributes, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IECodecList, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCConnectAckDesc = &MsgDesc{
	Name: "CC-CONNECT-ACK",
	IEs: []IEDesc{
		{IE: IEDuration, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

// CCReleaseDesc mirrors cc_release_msg_desc: RELEASE-REASON is
// mandatory in both directions, with its own descriptor rather than
// reusing a neighbouring one that happened to alias it in the original
// source.
var CCReleaseDesc = &MsgDesc{
	Name: "CC-RELEASE",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
		{IE: IEIWUToIWU, PPToFP: StatusOptional, FPToPP: StatusOptional, Flag: FlagRepeat},
		{IE: IEFacility, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCReleaseComDesc = &MsgDesc{
	Name: "CC-RELEASE-COM",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEIWUToIWU, PPToFP: StatusOptional, FPToPP: StatusOptional, Flag: FlagRepeat},
	},
}

// CCServiceChangeDesc, CCServiceAcceptDesc and CCServiceRejectDesc each
// use their own descriptor rather than the original's
// cc_connect_ack_msg_desc alias: SERVICE-CHANGE-INFO is mandatory
// only on the request, never on the accept/reject.
var CCServiceChangeDesc = &MsgDesc{
	Name: "CC-SERVICE-CHANGE",
	IEs: []IEDesc{
		{IE: IEServiceChangeInfo, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
		{IE: IECallAttributes, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCServiceAcceptDesc = &MsgDesc{
	Name: "CC-SERVICE-ACCEPT",
	IEs: []IEDesc{
		{IE: IECallAttributes, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEConnectionAttributes, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var CCServiceRejectDesc = &MsgDesc{
	Name: "CC-SERVICE-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
	},
}

var CCInfoDesc = &MsgDesc{
	Name: "CC-INFO",
	IEs: []IEDesc{
		{IE: IESingleDisplay, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEMultiDisplay, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IESingleKeypad, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEMultiKeypad, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IECallingPartyNumber, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IECalledPartyNumber, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IERepeatIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEIWUToIWU, PPToFP: StatusOptional, FPToPP: StatusOptional, Flag: FlagRepeat},
		{IE: IEFacility, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

// CCIwuInfoDesc mirrors cc_iwu_info_msg_desc: an almost-empty descriptor
// carrying nothing but the repeated IWU-TO-IWU group, for mid-call
// inter-working-unit signalling that doesn't fit CC-INFO's display/
// keypad framing.
var CCIwuInfoDesc = &MsgDesc{
	Name: "CC-IWU-INFO",
	IEs: []IEDesc{
		{IE: IERepeatIndicator, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEIWUToIWU, PPToFP: StatusOptional, FPToPP: StatusOptional, Flag: FlagRepeat},
	},
}

// ccDescByType maps a CC message type octet to its descriptor; cc.NewEntity
// passes it (via CCDescriptors) to trans.Dispatcher.Register.
var ccDescByType = map[uint8]*MsgDesc{
	MsgCCSetup:         CCSetupDesc,
	MsgCCCallProc:       CCCallProcDesc,
	MsgCCSetupAck:       CCSetupAckDesc,
	MsgCCAlerting:       CCAlertingDesc,
	MsgCCConnect:        CCConnectDesc,
	MsgCCConnectAck:     CCConnectAckDesc,
	MsgCCRelease:        CCReleaseDesc,
	MsgCCReleaseCom:     CCReleaseComDesc,
	MsgCCServiceChange:  CCServiceChangeDesc,
	MsgCCServiceAccept:  CCServiceAcceptDesc,
	MsgCCServiceReject:  CCServiceRejectDesc,
	MsgCCInfo:           CCInfoDesc,
	MsgCCIwuInfo:        CCIwuInfoDesc,
}

// CCDescriptors returns the CC message-type-to-descriptor table for
// registration with a trans.Dispatcher.
func CCDescriptors() map[uint8]*MsgDesc { return ccDescByType }
