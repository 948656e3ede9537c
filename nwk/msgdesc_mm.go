package nwk

// msgdesc_mm.go is the Mobility Management message descriptor table,
// grounded on the DECT_SFMT_MSG_DESC(mm_*, ...) tables in the
// original's mm.c. It covers access-rights, locate and temporary
// identity assignment, plus two exchanges the original's descriptor
// table also carries: cipher negotiation and MM-INFO (mux only; no
// cryptographic algorithm is implemented here).

// MM message type octets, EN 300 175-5 subclause 7.4.1 (protocol
// discriminator PDMobility).
const (
	MsgMMAccessRightsRequest          uint8 = 0x01
	MsgMMAccessRightsAccept           uint8 = 0x02
	MsgMMAccessRightsReject           uint8 = 0x03
	MsgMMAccessRightsTerminateRequest uint8 = 0x04
	MsgMMLocateRequest                uint8 = 0x05
	MsgMMLocateAccept                 uint8 = 0x06
	MsgMMLocateReject                 uint8 = 0x07
	MsgMMIdentityRequest              uint8 = 0x08
	MsgMMIdentityReply                uint8 = 0x09
	MsgMMTempIdentityAssign           uint8 = 0x0a
	MsgMMTempIdentityAssignAck        uint8 = 0x0b
	MsgMMTempIdentityAssignRej        uint8 = 0x0c
	MsgMMAuthRequest                  uint8 = 0x0d
	MsgMMAuthReply                    uint8 = 0x0e
	MsgMMKeyAllocate                  uint8 = 0x0f
	MsgMMCipherRequest                uint8 = 0x10
	MsgMMCipherSuggest                uint8 = 0x11
	MsgMMCipherReject                 uint8 = 0x12
	MsgMMInfoRequest                  uint8 = 0x13
	MsgMMInfoAccept                   uint8 = 0x14
	MsgMMInfoSuggest                  uint8 = 0x15
	MsgMMInfoReject                   uint8 = 0x16
)

var MMAccessRightsRequestDesc = &MsgDesc{
	Name: "MM-ACCESS-RIGHTS-REQUEST",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusMandatory, FPToPP: StatusNone},
		{IE: IEFixedIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IEAuthType, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IECipherInfo, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IETerminalCapability, PPToFP: StatusOptional, FPToPP: StatusNone},
	},
}

var MMAccessRightsAcceptDesc = &MsgDesc{
	Name: "MM-ACCESS-RIGHTS-ACCEPT",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IENWKAssignedIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IEDuration, PPToFP: StatusNone, FPToPP: StatusOptional},
	},
}

var MMAccessRightsRejectDesc = &MsgDesc{
	Name: "MM-ACCESS-RIGHTS-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
	},
}

var MMAccessRightsTerminateRequestDesc = &MsgDesc{
	Name: "MM-ACCESS-RIGHTS-TERMINATE-REQUEST",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IEReleaseReason, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMLocateRequestDesc = &MsgDesc{
	Name: "MM-LOCATE-REQUEST",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusMandatory, FPToPP: StatusNone},
		{IE: IEFixedIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IELocationArea, PPToFP: StatusOptional, FPToPP: StatusNone},
		{IE: IENWKAssignedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IECipherInfo, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMLocateAcceptDesc = &MsgDesc{
	Name: "MM-LOCATE-ACCEPT",
	IEs: []IEDesc{
		{IE: IENWKAssignedIdentity, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IEDuration, PPToFP: StatusNone, FPToPP: StatusOptional},
		{IE: IELocationArea, PPToFP: StatusNone, FPToPP: StatusOptional},
	},
}

var MMLocateRejectDesc = &MsgDesc{
	Name: "MM-LOCATE-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
	},
}

var MMIdentityRequestDesc = &MsgDesc{
	Name: "MM-IDENTITY-REQUEST",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusOptional, FPToPP: StatusMandatory},
	},
}

var MMIdentityReplyDesc = &MsgDesc{
	Name: "MM-IDENTITY-REPLY",
	IEs: []IEDesc{
		{IE: IEPortableIdentity, PPToFP: StatusMandatory, FPToPP: StatusOptional},
		{IE: IEFixedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMTempIdentityAssignDesc = &MsgDesc{
	Name: "MM-TEMPORARY-IDENTITY-ASSIGN",
	IEs: []IEDesc{
		{IE: IENWKAssignedIdentity, PPToFP: StatusNone, FPToPP: StatusMandatory},
		{IE: IEDuration, PPToFP: StatusNone, FPToPP: StatusOptional},
	},
}

var MMTempIdentityAssignAckDesc = &MsgDesc{
	Name: "MM-TEMPORARY-IDENTITY-ASSIGN-ACK",
	IEs: []IEDesc{},
}

var MMTempIdentityAssignRejDesc = &MsgDesc{
	Name: "MM-TEMPORARY-IDENTITY-ASSIGN-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusMandatory, FPToPP: StatusNone},
	},
}

var MMAuthRequestDesc = &MsgDesc{
	Name: "MM-AUTHENTICATION-REQUEST",
	IEs: []IEDesc{
		{IE: IEAuthType, PPToFP: StatusNone, FPToPP: StatusMandatory},
		{IE: IERand, PPToFP: StatusNone, FPToPP: StatusMandatory},
		{IE: IERs, PPToFP: StatusNone, FPToPP: StatusOptional},
	},
}

var MMAuthReplyDesc = &MsgDesc{
	Name: "MM-AUTHENTICATION-REPLY",
	IEs: []IEDesc{
		{IE: IERes, PPToFP: StatusMandatory, FPToPP: StatusNone},
		{IE: IERs, PPToFP: StatusOptional, FPToPP: StatusNone},
	},
}

var MMKeyAllocateDesc = &MsgDesc{
	Name: "MM-KEY-ALLOCATE",
	IEs: []IEDesc{
		{IE: IEAllocationType, PPToFP: StatusNone, FPToPP: StatusMandatory},
		{IE: IERand, PPToFP: StatusNone, FPToPP: StatusMandatory},
		{IE: IERs, PPToFP: StatusNone, FPToPP: StatusMandatory},
	},
}

// MMCipherRequestDesc/SuggestDesc/RejectDesc are the cipher-negotiation
// exchange present in the original's descriptor table; supplemented
// here as mux-only message routing with no cipher algorithm.
var MMCipherRequestDesc = &MsgDesc{
	Name: "MM-CIPHER-REQUEST",
	IEs: []IEDesc{
		{IE: IECipherInfo, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
	},
}

var MMCipherSuggestDesc = &MsgDesc{
	Name: "MM-CIPHER-SUGGEST",
	IEs: []IEDesc{
		{IE: IECipherInfo, PPToFP: StatusMandatory, FPToPP: StatusMandatory},
	},
}

var MMCipherRejectDesc = &MsgDesc{
	Name: "MM-CIPHER-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

// MMInfoRequestDesc/AcceptDesc/SuggestDesc/RejectDesc cover the MM-INFO
// exchange: used for locate-area broadcast parameters and network-time
// distribution.
var MMInfoRequestDesc = &MsgDesc{
	Name: "MM-INFO-REQUEST",
	IEs: []IEDesc{
		{IE: IEFixedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IENetworkParameter, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMInfoAcceptDesc = &MsgDesc{
	Name: "MM-INFO-ACCEPT",
	IEs: []IEDesc{
		{IE: IEFixedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IENetworkParameter, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IETimeDate, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMInfoSuggestDesc = &MsgDesc{
	Name: "MM-INFO-SUGGEST",
	IEs: []IEDesc{
		{IE: IEFixedIdentity, PPToFP: StatusOptional, FPToPP: StatusOptional},
		{IE: IETimeDate, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var MMInfoRejectDesc = &MsgDesc{
	Name: "MM-INFO-REJECT",
	IEs: []IEDesc{
		{IE: IEReleaseReason, PPToFP: StatusOptional, FPToPP: StatusOptional},
	},
}

var mmDescByType = map[uint8]*MsgDesc{
	MsgMMAccessRightsRequest:          MMAccessRightsRequestDesc,
	MsgMMAccessRightsAccept:           MMAccessRightsAcceptDesc,
	MsgMMAccessRightsReject:           MMAccessRightsRejectDesc,
	MsgMMAccessRightsTerminateRequest: MMAccessRightsTerminateRequestDesc,
	MsgMMLocateRequest:                MMLocateRequestDesc,
	MsgMMLocateAccept:                 MMLocateAcceptDesc,
	MsgMMLocateReject:                 MMLocateRejectDesc,
	MsgMMIdentityRequest:              MMIdentityRequestDesc,
	MsgMMIdentityReply:                MMIdentityReplyDesc,
	MsgMMTempIdentityAssign:           MMTempIdentityAssignDesc,
	MsgMMTempIdentityAssignAck:        MMTempIdentityAssignAckDesc,
	MsgMMTempIdentityAssignRej:        MMTempIdentityAssignRejDesc,
	MsgMMAuthRequest:                  MMAuthRequestDesc,
	MsgMMAuthReply:                    MMAuthReplyDesc,
	MsgMMKeyAllocate:                  MMKeyAllocateDesc,
	MsgMMCipherRequest:                MMCipherRequestDesc,
	MsgMMCipherSuggest:                MMCipherSuggestDesc,
	MsgMMCipherReject:                 MMCipherRejectDesc,
	MsgMMInfoRequest:                  MMInfoRequestDesc,
	MsgMMInfoAccept:                   MMInfoAcceptDesc,
	MsgMMInfoSuggest:                  MMInfoSuggestDesc,
	MsgMMInfoReject:                   MMInfoRejectDesc,
}

// MMDescriptors returns the MM message-type-to-descriptor table for
// registration with a trans.Dispatcher.
func MMDescriptors() map[uint8]*MsgDesc { return mmDescByType }
