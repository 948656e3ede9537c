// Package config holds the per-handle configuration of a DECT NWK-layer
// instance: its mode (FP or PP), the identities it presents on the air
// interface, and the transaction table sizing. It follows cs104.Config's
// shape: a plain struct with a Valid method that fills in the
// standard-mandated defaults and range-checks the rest.
package config

import (
	"errors"
	"time"

	"github.com/blang/semver"

	"github.com/rob-gra/go-dect/lower"
	"github.com/rob-gra/go-dect/nwk"
)

// Mode selects which side of the air interface this handle implements.
// It is an alias of nwk.Mode: the codec's direction rules and a handle's
// configured role are the same concept and must not drift apart.
type Mode = nwk.Mode

const (
	// ModeFP is the Fixed Part (base station) role.
	ModeFP = nwk.ModeFP
	// ModePP is the Portable Part (handset) role.
	ModePP = nwk.ModePP
)

// defined by EN 300 175-5 subclass 8.2: transaction identifier range per
// protocol is 0..6, i.e. 7 simultaneous transactions for CC and the lone
// slot reserved for MM.
const (
	DefaultMaxTransactionsCC = 7
	DefaultMaxTransactionsMM = 1

	// DefaultSetupTimeout is the CC setup (T-301-class) timer duration.
	DefaultSetupTimeout = 20 * time.Second
)

// HandleConfig configures one NWK-layer handle (one FP or PP instance).
// The zero value has its defaults filled in by Valid.
type HandleConfig struct {
	Mode Mode

	// PARI is the Access Rights Identifier of this handle (the operator
	// identity broadcast by an FP, or the identity a PP expects of its
	// FP).
	PARI lower.ARI

	// PARK is the Portable Access Rights Key bound to a PP's
	// subscription; sent as FIXED-IDENTITY in outbound SETUP.
	PARK lower.PARK

	// MaxTransactionsCC/MM size the per-link transaction table for each
	// protocol; 0 selects the standard default.
	MaxTransactionsCC int
	MaxTransactionsMM int

	// SetupTimeout is the CC entity's setup-timer duration; 0 selects
	// DefaultSetupTimeout.
	SetupTimeout time.Duration

	// CapabilityProfile, if set, must be a semver version;
	// OffersWidebandCodec reports whether it is at least "1.1.0". The cc
	// entity does not consult it: outbound SETUP never carries CODEC-LIST.
	CapabilityProfile string
}

// Valid range-checks the configuration and fills in defaults for every
// unspecified field, mirroring cs104.Config.Valid.
func (c *HandleConfig) Valid() error {
	if c == nil {
		return errors.New("config: nil HandleConfig")
	}
	if c.MaxTransactionsCC == 0 {
		c.MaxTransactionsCC = DefaultMaxTransactionsCC
	} else if c.MaxTransactionsCC < 1 || c.MaxTransactionsCC > 7 {
		return errors.New("config: MaxTransactionsCC not in [1, 7]")
	}
	if c.MaxTransactionsMM == 0 {
		c.MaxTransactionsMM = DefaultMaxTransactionsMM
	} else if c.MaxTransactionsMM < 1 || c.MaxTransactionsMM > 7 {
		return errors.New("config: MaxTransactionsMM not in [1, 7]")
	}
	if c.SetupTimeout == 0 {
		c.SetupTimeout = DefaultSetupTimeout
	} else if c.SetupTimeout < 0 {
		return errors.New("config: SetupTimeout must be positive")
	}
	if c.CapabilityProfile != "" {
		if _, err := semver.Make(c.CapabilityProfile); err != nil {
			return errors.New("config: CapabilityProfile is not a valid semver: " + err.Error())
		}
	}
	return nil
}

// OffersWidebandCodec reports whether CapabilityProfile is at least
// "1.1.0", the profile version this module treats as GAP-1.1-capable.
func (c *HandleConfig) OffersWidebandCodec() bool {
	if c.CapabilityProfile == "" {
		return false
	}
	v, err := semver.Make(c.CapabilityProfile)
	if err != nil {
		return false
	}
	gap11 := semver.MustParse("1.1.0")
	return v.GE(gap11)
}

// DefaultHandleConfig returns a HandleConfig with every field at its
// standard default for the given mode.
func DefaultHandleConfig(mode Mode) HandleConfig {
	return HandleConfig{
		Mode:              mode,
		MaxTransactionsCC: DefaultMaxTransactionsCC,
		MaxTransactionsMM: DefaultMaxTransactionsMM,
		SetupTimeout:      DefaultSetupTimeout,
	}
}
