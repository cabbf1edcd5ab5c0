package directory

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/khata-pos/khata/internal/domain"
	"github.com/khata-pos/khata/internal/store"
)

func newTestDirectory(t *testing.T) (*Service, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	return NewService(st, zerolog.Nop()), st
}

func TestAdd(t *testing.T) {
	dir, _ := newTestDirectory(t)

	customer, err := dir.Add("  Ali Khan  ")
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if customer.Name != "Ali Khan" {
		t.Errorf("name = %q, want trimmed", customer.Name)
	}
	if customer.ID == "" {
		t.Error("surrogate id not assigned")
	}
}

func TestAdd_RejectsBlank(t *testing.T) {
	dir, _ := newTestDirectory(t)

	if _, err := dir.Add("   "); !errors.Is(err, domain.ErrEmptyCustomer) {
		t.Errorf("error = %v, want ErrEmptyCustomer", err)
	}
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	dir, _ := newTestDirectory(t)

	dir.Add("Ali")
	if _, err := dir.Add(" Ali "); !errors.Is(err, domain.ErrDuplicateCustomer) {
		t.Errorf("error = %v, want ErrDuplicateCustomer", err)
	}
}

func TestList_SortedByName(t *testing.T) {
	dir, _ := newTestDirectory(t)
	dir.Add("Zara")
	dir.Add("Ali")
	dir.Add("Mehak")

	customers, err := dir.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"Ali", "Mehak", "Zara"}
	for i, name := range want {
		if customers[i].Name != name {
			t.Fatalf("List() order = %v, want %v", customers, want)
		}
	}
}

func TestRename(t *testing.T) {
	dir, _ := newTestDirectory(t)
	customer, _ := dir.Add("Ali")

	renamed, err := dir.Rename(customer.ID, "Ali Khan")
	if err != nil {
		t.Fatalf("Rename() error: %v", err)
	}
	if renamed.Name != "Ali Khan" {
		t.Errorf("name = %q", renamed.Name)
	}
	if renamed.ID != customer.ID {
		t.Error("rename must keep the surrogate id")
	}

	if _, err := dir.Rename("no-such-id", "X"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("error = %v, want ErrCustomerNotFound", err)
	}
}
