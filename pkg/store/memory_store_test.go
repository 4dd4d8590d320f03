package store

import (
	"context"
	"errors"
	"testing"

	"islandloaf/pkg/domain"
)

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := mustVendor(t, s)
	u.CategoriesAllowed[0] = domain.CategoryProducts

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.CategoriesAllowed[0] != domain.CategoryWellness {
		t.Fatalf("caller mutation leaked into store: %v", got.CategoriesAllowed)
	}
}

func TestMemoryStoreIDsStartAtOnePerType(t *testing.T) {
	s := NewMemoryStore()
	u := mustVendor(t, s)
	svc := mustService(t, s, u.ID, domain.CategoryWellness)
	b := mustBooking(t, s, u.ID, svc.ID)
	if u.ID != 1 || svc.ID != 1 || b.ID != 1 {
		t.Fatalf("expected independent counters, got user=%d service=%d booking=%d", u.ID, svc.ID, b.ID)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open("", "")
	if err != nil {
		t.Fatalf("open default: %v", err)
	}
	if ModeOf(s) != ModeMemory {
		t.Fatalf("expected memory default, got %s", ModeOf(s))
	}
	if _, err := Open("postgres", ""); err == nil {
		t.Fatalf("expected postgres without dsn to fail")
	}
	if _, err := Open("sqlite", ""); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected unknown mode, got %v", err)
	}
}

func TestSwitchableStoreSwap(t *testing.T) {
	ctx := context.Background()
	first := NewMemoryStore()
	sw := NewSwitchableStore(first)
	u := mustVendor(t, sw)

	second := NewMemoryStore()
	prev := sw.Swap(second)
	if prev != Store(first) {
		t.Fatalf("expected previous backend to be returned")
	}
	if _, err := sw.GetUser(ctx, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected fresh backend after swap, got %v", err)
	}
	if _, err := first.GetUser(ctx, u.ID); err != nil {
		t.Fatalf("old backend should keep its data: %v", err)
	}
	if ModeOf(sw) != ModeMemory {
		t.Fatalf("unexpected mode: %s", ModeOf(sw))
	}
}
