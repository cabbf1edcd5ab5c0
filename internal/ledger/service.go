package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/khata-pos/khata/internal/domain"
)

// displayDate is the informational creation-date format stamped on new
// entries. Display-only; nothing sorts on it.
const displayDate = "02 Jan 2006, 3:04 PM"

// Service owns the ledger operations. All state lives in the store; the
// service itself carries no caches.
type Service struct {
	store domain.Store
	ids   *domain.IDSource
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a ledger service over the shared store.
func NewService(store domain.Store, ids *domain.IDSource, log zerolog.Logger) *Service {
	return &Service{store: store, ids: ids, now: time.Now, log: log}
}

// Grouped re-derives the full grouped view from the store.
func (s *Service) Grouped() (domain.GroupedLedger, error) {
	loans, err := s.store.Loans()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	customers, err := s.store.Customers()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return GroupByCustomer(loans, customers), nil
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// AddLoanOrPayment appends a manual ledger entry for the named customer.
// Positive amounts record new debt, negative amounts record a payment
// received. Zero amounts and blank names are rejected with no mutation.
func (s *Service) AddLoanOrPayment(customerName string, amount domain.Amount) (domain.LoanTransaction, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return domain.LoanTransaction{}, domain.ErrEmptyCustomer
	}
	if amount.IsZero() {
		return domain.LoanTransaction{}, domain.ErrZeroAmount
	}

	txn := domain.LoanTransaction{
		TransactionID: s.ids.Next(),
		CustomerID:    s.customerID(name),
		Customer:      name,
		Date:          s.now().Format(displayDate),
		LoanType:      domain.ClassifyLoan(amount),
		AmountDue:     amount,
		Items:         []domain.LineItem{},
		TotalSale:     amount,
	}

	loans, err := s.store.Loans()
	if err != nil {
		return domain.LoanTransaction{}, fmt.Errorf("load ledger: %w", err)
	}
	loans = append(loans, txn)
	if err := s.store.SaveLoans(loans); err != nil {
		return domain.LoanTransaction{}, fmt.Errorf("persist ledger: %w", err)
	}

	s.log.Info().
		Int64("transaction_id", txn.TransactionID).
		Str("customer", name).
		Str("loan_type", string(txn.LoanType)).
		Str("amount", amount.String()).
		Msg("ledger entry added")
	return txn, nil
}

// Settle permanently removes the transaction with the given id from the
// ledger. "Settled" means a hard delete, not an adjustment to zero.
// Settling an id that is not present is a no-op, so the operation is
// idempotent.
func (s *Service) Settle(transactionID int64) error {
	loans, err := s.store.Loans()
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	kept := loans[:0:0]
	removed := 0
	for _, txn := range loans {
		if txn.Matches(transactionID) {
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	if removed == 0 {
		s.log.Debug().Int64("transaction_id", transactionID).
			Msg("settle matched nothing")
		return nil
	}

	if err := s.store.SaveLoans(kept); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	s.log.Info().Int64("transaction_id", transactionID).
		Msg("transaction settled")
	return nil
}

// customerID resolves the directory's surrogate id for a trimmed display
// name. Empty when the customer is not in the directory; the entry is
// still accepted and grouping self-heals around it.
func (s *Service) customerID(name string) string {
	customers, err := s.store.Customers()
	if err != nil {
		return ""
	}
	for _, c := range customers {
		if strings.TrimSpace(c.Name) == name {
			return c.ID
		}
	}
	return ""
}

// ─── Summary Report ─────────────────────────────────────────────────────────

// Summary is the ledger-wide roll-up backing the reports page.
type Summary struct {
	CustomerCount     int           `json:"customerCount"`
	TransactionCount  int           `json:"transactionCount"`
	CustomersInDebt   int           `json:"customersInDebt"`
	CustomersInCredit int           `json:"customersInCredit"`
	TotalOutstanding  domain.Amount `json:"totalOutstanding"`
	TotalCredit       domain.Amount `json:"totalCredit"`
	NetDue            domain.Amount `json:"netDue"`
}

// Summarize computes the ledger-wide summary from the grouped view.
func (s *Service) Summarize() (Summary, error) {
	grouped, err := s.Grouped()
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{CustomerCount: len(grouped)}
	for _, entry := range grouped {
		sum.TransactionCount += len(entry.Transactions)
		sum.NetDue = sum.NetDue.Add(entry.TotalDue)
		switch entry.TotalDue.Sign() {
		case 1:
			sum.CustomersInDebt++
			sum.TotalOutstanding = sum.TotalOutstanding.Add(entry.TotalDue)
		case -1:
			sum.CustomersInCredit++
			sum.TotalCredit = sum.TotalCredit.Add(entry.TotalDue.Neg())
		}
	}
	return sum, nil
}

// sortNewestFirst orders transactions by id descending (newest first).
// Presentation-layer concern layered on top of the grouped view, which
// itself preserves ledger storage order.
func sortNewestFirst(txns []domain.LoanTransaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].ID() > txns[j].ID()
	})
}
