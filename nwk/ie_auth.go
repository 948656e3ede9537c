package nwk

import "fmt"

// ie_auth.go covers the MM authentication/cipher-negotiation IEs:
// AUTH-TYPE, ALLOCATION-TYPE, RAND, RES, RS and CIPHER-INFO. No
// cryptographic algorithm is implemented here; these handlers only move
// the challenge/response octets between the wire and the mm package's
// cipher/authentication entities unmodified.

// AuthType is the AUTH-TYPE IE: which authentication algorithm and key
// the peer proposes.
type AuthType struct {
	Algorithm  uint8
	AuthID     uint8
	ProcessKey uint8
	Flags      uint8
	KeyNumber  uint8
	KeyType    uint8
}

func (AuthType) Kind() IEType { return IEAuthType }

// AllocationType is the ALLOCATION-TYPE IE, used in the key-allocation
// exchange to name which derived key is being allocated.
type AllocationType struct {
	Algorithm uint8
	KeyNumber uint8
	KeyType   uint8
}

func (AllocationType) Kind() IEType { return IEAllocationType }

// Rand is the RAND IE: a 64-bit authentication challenge, carried
// opaquely.
type Rand struct {
	Value [8]byte
}

func (Rand) Kind() IEType { return IERand }

// Res is the RES IE: the 32-bit authentication response.
type Res struct {
	Value [4]byte
}

func (Res) Kind() IEType { return IERes }

// Rs is the RS IE: the 64-bit seed used in the key-allocation exchange.
type Rs struct {
	Value [8]byte
}

func (Rs) Kind() IEType { return IERs }

// CipherInfo is the CIPHER-INFO IE: the cipher algorithm and key
// requested or confirmed for a link.
type CipherInfo struct {
	Enable    bool
	Algorithm uint8
	KeyType   uint8
	KeyNumber uint8
}

func (CipherInfo) Kind() IEType { return IECipherInfo }

func init() {
	register(IEAuthType, ieMeta{
		name:  "AUTH-TYPE",
		parse: parseAuthType,
		build: buildAuthType,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IEAllocationType, ieMeta{
		name: "ALLOCATION-TYPE",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 2 {
				return nil, &ContentError{IE: IEAllocationType, Reason: "short content"}
			}
			return AllocationType{Algorithm: data[0], KeyNumber: data[1] >> 4, KeyType: data[1] & 0x0f}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			a, ok := v.(AllocationType)
			if !ok {
				return nil, &ContentError{IE: IEAllocationType, Reason: "wrong Go type"}
			}
			return []byte{a.Algorithm, a.KeyNumber<<4 | a.KeyType&0x0f}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IERand, ieMeta{
		name: "RAND",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 8 {
				return nil, &ContentError{IE: IERand, Reason: "short content"}
			}
			var r Rand
			copy(r.Value[:], data[:8])
			return r, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			r, ok := v.(Rand)
			if !ok {
				return nil, &ContentError{IE: IERand, Reason: "wrong Go type"}
			}
			return append([]byte(nil), r.Value[:]...), nil
		},
		dump: func(v IE) string { return "8 bytes" },
	})
	register(IERes, ieMeta{
		name: "RES",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 4 {
				return nil, &ContentError{IE: IERes, Reason: "short content"}
			}
			var r Res
			copy(r.Value[:], data[:4])
			return r, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			r, ok := v.(Res)
			if !ok {
				return nil, &ContentError{IE: IERes, Reason: "wrong Go type"}
			}
			return append([]byte(nil), r.Value[:]...), nil
		},
		dump: func(v IE) string { return "4 bytes" },
	})
	register(IERs, ieMeta{
		name: "RS",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 8 {
				return nil, &ContentError{IE: IERs, Reason: "short content"}
			}
			var r Rs
			copy(r.Value[:], data[:8])
			return r, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			r, ok := v.(Rs)
			if !ok {
				return nil, &ContentError{IE: IERs, Reason: "wrong Go type"}
			}
			return append([]byte(nil), r.Value[:]...), nil
		},
		dump: func(v IE) string { return "8 bytes" },
	})
	register(IECipherInfo, ieMeta{
		name: "CIPHER-INFO",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 2 {
				return nil, &ContentError{IE: IECipherInfo, Reason: "short content"}
			}
			return CipherInfo{
				Enable:    data[0]&0x80 != 0,
				Algorithm: data[0] & 0x7f,
				KeyType:   data[1] >> 4,
				KeyNumber: data[1] & 0x0f,
			}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			c, ok := v.(CipherInfo)
			if !ok {
				return nil, &ContentError{IE: IECipherInfo, Reason: "wrong Go type"}
			}
			var enable byte
			if c.Enable {
				enable = 0x80
			}
			return []byte{enable | c.Algorithm&0x7f, c.KeyType<<4 | c.KeyNumber&0x0f}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
}

func parseAuthType(dh *Handle, data []byte) (IE, error) {
	if len(data) < 4 {
		return nil, &ContentError{IE: IEAuthType, Reason: "short content"}
	}
	return AuthType{
		Algorithm:  data[0],
		AuthID:     data[1] >> 6,
		ProcessKey: data[1] >> 5 & 0x01,
		Flags:      data[2],
		KeyNumber:  data[3] >> 4,
		KeyType:    data[3] & 0x0f,
	}, nil
}

func buildAuthType(dh *Handle, v IE) ([]byte, error) {
	a, ok := v.(AuthType)
	if !ok {
		return nil, &ContentError{IE: IEAuthType, Reason: "wrong Go type"}
	}
	return []byte{
		a.Algorithm,
		a.AuthID<<6 | a.ProcessKey&0x01<<5,
		a.Flags,
		a.KeyNumber<<4 | a.KeyType&0x0f,
	}, nil
}
