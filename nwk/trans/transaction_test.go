package trans

import "testing"

func TestTableAllocateAssignsLowestFreeTI(t *testing.T) {
	table := NewTable(PDCallControl, 7)

	var tis []uint8
	for i := 0; i < 3; i++ {
		tr, err := table.Allocate(false)
		if err != nil {
			t.Fatalf("Allocate: %v", err)
		}
		tis = append(tis, tr.TI.Value)
	}
	for i, v := range tis {
		if v != uint8(i) {
			t.Errorf("allocation %d got TI %d, want %d", i, v, i)
		}
	}

	table.Release(TI{Value: 1})
	tr, err := table.Allocate(false)
	if err != nil {
		t.Fatalf("Allocate after release: %v", err)
	}
	if tr.TI.Value != 1 {
		t.Errorf("expected reallocated TI 1, got %d", tr.TI.Value)
	}
}

func TestTableAllocateExhausted(t *testing.T) {
	table := NewTable(PDMobility, 2)
	if _, err := table.Allocate(false); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if _, err := table.Allocate(false); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if _, err := table.Allocate(false); err != ErrNoTransactionAvailable {
		t.Fatalf("got %v, want ErrNoTransactionAvailable", err)
	}
}

func TestTableAcceptDuplicateRejected(t *testing.T) {
	table := NewTable(PDCallControl, 7)
	ti := TI{Value: 3, AllocatedByPP: true}
	if _, err := table.Accept(ti); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, err := table.Accept(ti); err != ErrDuplicateTransaction {
		t.Fatalf("got %v, want ErrDuplicateTransaction", err)
	}
}

func TestTableReleaseThenLookupFails(t *testing.T) {
	table := NewTable(PDCallControl, 7)
	tr, _ := table.Allocate(false)
	table.Release(tr.TI)
	if _, ok := table.Lookup(tr.TI); ok {
		t.Fatal("lookup should fail after release")
	}
}
