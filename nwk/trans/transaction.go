// Package trans implements the NWK Transaction Layer: transaction
// identifier allocation and the per-link table of live transactions
// that the CC and MM entities build their state machines on top of. It
// is grounded on cs104's APCI sequence-number bookkeeping, generalized
// from a single numbered stream to a table of independently numbered
// transactions distinguished by protocol discriminator and TI.
package trans

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Role distinguishes which end of a transaction this handle's NWK
// instance is playing: the originator that allocated the TI, or the
// responder that received it.
type Role uint8

const (
	RoleOriginator Role = iota
	RoleResponder
)

// ProtocolDiscriminator selects which upper protocol entity (CC or MM)
// owns a transaction, EN 300 175-5 table 7.9.
type ProtocolDiscriminator uint8

const (
	PDCallControl    ProtocolDiscriminator = 0x3
	PDMobility       ProtocolDiscriminator = 0x5
	PDCISSOrCallback ProtocolDiscriminator = 0x7
)

// TI is the 3-bit transaction identifier value plus the flag bit that
// marks which side allocated it.
type TI struct {
	Value          uint8 // 0..6; 7 is reserved ("no associated transaction")
	AllocatedByPP  bool
}

func (t TI) String() string {
	side := "FP"
	if t.AllocatedByPP {
		side = "PP"
	}
	return fmt.Sprintf("TI(%d,%s)", t.Value, side)
}

const maxTIValue = 6 // TI values 0..6 are assignable; 7 is reserved.

// Transaction is one live NWK transaction: a TI bound to a protocol
// discriminator. Unlike the original's reference-counted, container-of-
// embedded dect_transaction, it is a plain struct held by its Table and
// handed to the Protocol's Open/Rcv as a parameter; the owning cc.Entity
// or mm.Entity keeps its own transaction-to-state-machine map rather
// than the Transaction holding a callback, so Go's garbage collector
// retires it when the Table drops its last reference.
type Transaction struct {
	Protocol ProtocolDiscriminator
	TI       TI
	Role     Role

	// DebugID is a process-local correlation id for trace logging only;
	// it never appears on the wire and carries no protocol meaning.
	DebugID uuid.UUID
}

// Table is the per-link, per-protocol set of live transactions; it owns
// TI allocation, mirroring "every protocol discriminator keeps
// its own TI namespace" invariant.
type Table struct {
	mu       sync.Mutex
	protocol ProtocolDiscriminator
	capacity int
	entries  map[uint8]*Transaction
}

// NewTable builds an empty Table for protocol, sized to hold at most
// capacity simultaneous transactions (config.HandleConfig.
// MaxTransactionsCC/MM feeds this).
func NewTable(protocol ProtocolDiscriminator, capacity int) *Table {
	return &Table{protocol: protocol, capacity: capacity, entries: make(map[uint8]*Transaction)}
}

// ErrNoTransactionAvailable is returned by Allocate when every TI value
// in range is already in use.
var ErrNoTransactionAvailable = fmt.Errorf("trans: no transaction identifier available")

// ErrDuplicateTransaction is returned by Accept when the peer-initiated
// TI is already bound in this table.
var ErrDuplicateTransaction = fmt.Errorf("trans: transaction identifier already in use")

// Allocate reserves the lowest free TI value for a transaction this side
// originates (role RoleOriginator) sequential-search
// allocation policy.
func (t *Table) Allocate(allocatedByPP bool) (*Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) >= t.capacity {
		return nil, ErrNoTransactionAvailable
	}
	for v := uint8(0); v <= maxTIValue; v++ {
		if _, used := t.entries[v]; used {
			continue
		}
		tr := &Transaction{
			Protocol: t.protocol,
			TI:       TI{Value: v, AllocatedByPP: allocatedByPP},
			Role:     RoleOriginator,
			DebugID:  uuid.New(),
		}
		t.entries[v] = tr
		return tr, nil
	}
	return nil, ErrNoTransactionAvailable
}

// Accept binds a transaction whose TI the peer chose (an inbound
// message establishing a new transaction), rejecting a collision with
// an already-live TI duplicate-TI handling.
func (t *Table) Accept(ti TI) (*Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, used := t.entries[ti.Value]; used {
		return nil, ErrDuplicateTransaction
	}
	if len(t.entries) >= t.capacity {
		return nil, ErrNoTransactionAvailable
	}
	tr := &Transaction{
		Protocol: t.protocol,
		TI:       ti,
		Role:     RoleResponder,
		DebugID:  uuid.New(),
	}
	t.entries[ti.Value] = tr
	return tr, nil
}

// Lookup finds the transaction bound to ti, if any.
func (t *Table) Lookup(ti TI) (*Transaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr, ok := t.entries[ti.Value]
	return tr, ok
}

// Release removes a transaction from the table; this is the only way a
// TI value becomes available for reallocation. The "release collision"
// edge case, both sides releasing the same TI concurrently, is not an
// error: it is just two independent Release calls.
func (t *Table) Release(ti TI) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, ti.Value)
}

// Len reports the number of live transactions, for tests and metrics.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
