// Package store implements the shared persistence contract over named JSON
// collections. Reads are forgiving: an absent collection, or one whose
// stored payload fails to parse, yields an empty slice rather than an
// error, so malformed local data degrades to a safe default instead of
// breaking every view derived from it.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/khata-pos/khata/internal/domain"
	"github.com/khata-pos/khata/internal/infra/sqlite"
)

// Collection keys shared by every page of the application.
const (
	KeyLoans     = "loans"
	KeyCustomers = "customers"
)

// SQLStore is the SQLite-backed implementation of domain.Store.
type SQLStore struct {
	db  *sqlite.DB
	log zerolog.Logger
}

// NewSQLStore wraps an open database.
func NewSQLStore(db *sqlite.DB, log zerolog.Logger) *SQLStore {
	return &SQLStore{db: db, log: log}
}

// Loans returns the full loan ledger in storage order.
func (s *SQLStore) Loans() ([]domain.LoanTransaction, error) {
	var loans []domain.LoanTransaction
	if err := s.read(KeyLoans, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// SaveLoans overwrites the loan ledger.
func (s *SQLStore) SaveLoans(loans []domain.LoanTransaction) error {
	return s.write(KeyLoans, loans)
}

// Customers returns the customer directory.
func (s *SQLStore) Customers() ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := s.read(KeyCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// SaveCustomers overwrites the customer directory.
func (s *SQLStore) SaveCustomers(customers []domain.Customer) error {
	return s.write(KeyCustomers, customers)
}

// read decodes the collection stored under key into v. Missing keys and
// unparsable payloads leave v untouched (empty).
func (s *SQLStore) read(key string, v any) error {
	data, ok, err := s.db.GetCollection(key)
	if err != nil {
		return fmt.Errorf("read collection %q: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn().Str("collection", key).Err(err).
			Msg("stored collection is not valid JSON, treating as empty")
		return nil
	}
	return nil
}

// write encodes v and fully overwrites the collection stored under key.
func (s *SQLStore) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	if err := s.db.PutCollection(key, data); err != nil {
		return fmt.Errorf("write collection %q: %w", key, err)
	}
	return nil
}

// Compile-time check: SQLStore implements the shared contract.
var _ domain.Store = (*SQLStore)(nil)
