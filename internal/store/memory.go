package store

import (
	"sync"

	"github.com/khata-pos/khata/internal/domain"
)

// MemStore is an in-memory implementation of domain.Store for tests and
// throwaway sessions. Slices are copied on the way in and out so callers
// can never mutate internal state.
type MemStore struct {
	mu        sync.Mutex
	loans     []domain.LoanTransaction
	customers []domain.Customer
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Loans returns a copy of the loan ledger.
func (m *MemStore) Loans() ([]domain.LoanTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.LoanTransaction, len(m.loans))
	copy(out, m.loans)
	return out, nil
}

// SaveLoans overwrites the loan ledger.
func (m *MemStore) SaveLoans(loans []domain.LoanTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans = make([]domain.LoanTransaction, len(loans))
	copy(m.loans, loans)
	return nil
}

// Customers returns a copy of the customer directory.
func (m *MemStore) Customers() ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Customer, len(m.customers))
	copy(out, m.customers)
	return out, nil
}

// SaveCustomers overwrites the customer directory.
func (m *MemStore) SaveCustomers(customers []domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = make([]domain.Customer, len(customers))
	copy(m.customers, customers)
	return nil
}

var _ domain.Store = (*MemStore)(nil)
