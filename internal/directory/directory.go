// Package directory manages the customer directory. The loan ledger
// consumes it read-only; customers are created and listed here.
package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/khata-pos/khata/internal/domain"
)

// Service owns customer directory operations over the shared store.
type Service struct {
	store domain.Store
	log   zerolog.Logger
}

// NewService creates a directory service.
func NewService(store domain.Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// List returns all customers sorted by display name.
func (s *Service) List() ([]domain.Customer, error) {
	customers, err := s.store.Customers()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

// Add registers a new customer. Names are trimmed; blanks and duplicates
// (exact trimmed match) are rejected. Each customer gets a stable
// surrogate id so a later rename cannot orphan ledger history.
func (s *Service) Add(name string) (domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Customer{}, domain.ErrEmptyCustomer
	}

	customers, err := s.store.Customers()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("load customers: %w", err)
	}
	for _, c := range customers {
		if strings.TrimSpace(c.Name) == name {
			return domain.Customer{}, domain.ErrDuplicateCustomer
		}
	}

	customer := domain.Customer{ID: uuid.NewString(), Name: name}
	customers = append(customers, customer)
	if err := s.store.SaveCustomers(customers); err != nil {
		return domain.Customer{}, fmt.Errorf("persist customers: %w", err)
	}

	s.log.Info().Str("customer_id", customer.ID).Str("name", name).
		Msg("customer added")
	return customer, nil
}

// Rename changes a customer's display name, found by surrogate id.
// Ledger rows stamped with the id keep aggregating under the customer;
// older name-only rows self-heal into their own group instead of
// breaking.
func (s *Service) Rename(id, newName string) (domain.Customer, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.Customer{}, domain.ErrEmptyCustomer
	}

	customers, err := s.store.Customers()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("load customers: %w", err)
	}

	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		customers[i].Name = newName
		if err := s.store.SaveCustomers(customers); err != nil {
			return domain.Customer{}, fmt.Errorf("persist customers: %w", err)
		}
		return customers[i], nil
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}
