// Package mm implements the Mobility Management protocol entity:
// access rights, locate, temporary identity assignment, and the
// cipher/info exchanges carried by the original's message descriptor
// table.
package mm

import "github.com/rob-gra/go-dect/nwk/trans"

// Transaction is one live MM exchange. Unlike cc.Call, an MM exchange
// typically completes in a single request/response round trip and is
// released immediately after; it carries no timer, and the Entity arms
// none for it.
//
// Sized by its own type, not a generic block: dect_mm_transaction_alloc
// allocated a fixed dect_transaction-sized block for what is actually a
// larger dect_mm_endpoint. Go has no equivalent sizing concern since
// there is no manual allocation here at all.
type Transaction struct {
	tr   *trans.Transaction
	kind exchangeKind

	entity *Entity
}

type exchangeKind uint8

const (
	exchangeAccessRights exchangeKind = iota
	exchangeLocate
	exchangeIdentity
	exchangeTempIdentityAssign
	exchangeAuthentication
	exchangeKeyAllocate
	exchangeCipher
	exchangeInfo
)

