package ledger

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/khata-pos/khata/internal/domain"
)

// ─── Routing State Machine ──────────────────────────────────────────────────
// Three display levels driven by two optional URL query parameters.
// Priority order, first match wins:
//   1. transaction present and numeric → TransactionDetail
//   2. customer present               → CustomerDetail
//   3. otherwise                      → Overview
// Navigation is full re-entry: each view is a pure function of stored
// state, so reloading a URL always reproduces it.

// ViewKind identifies a display level.
type ViewKind int

const (
	ViewOverview ViewKind = iota
	ViewCustomerDetail
	ViewTransactionDetail
)

// String names the view kind for logs and JSON.
func (k ViewKind) String() string {
	switch k {
	case ViewCustomerDetail:
		return "customer"
	case ViewTransactionDetail:
		return "transaction"
	default:
		return "overview"
	}
}

// Route is the URL-encoded navigation state: the raw values of the two
// query parameters.
type Route struct {
	Customer    string
	Transaction string
}

// Kind resolves the route to a display level. A transaction parameter
// that does not parse as a number is ignored and resolution falls
// through to the customer parameter.
func (r Route) Kind() ViewKind {
	if _, err := strconv.ParseInt(r.Transaction, 10, 64); r.Transaction != "" && err == nil {
		return ViewTransactionDetail
	}
	if r.Customer != "" {
		return ViewCustomerDetail
	}
	return ViewOverview
}

// TransactionID returns the parsed transaction parameter, zero if absent
// or malformed.
func (r Route) TransactionID() int64 {
	id, _ := strconv.ParseInt(r.Transaction, 10, 64)
	return id
}

// Query renders the route back to its query-string form, percent-encoded.
func (r Route) Query() string {
	v := url.Values{}
	if r.Transaction != "" {
		v.Set("transaction", r.Transaction)
	} else if r.Customer != "" {
		v.Set("customer", r.Customer)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// CustomerRoute builds the route for a customer's detail view.
func CustomerRoute(name string) Route {
	return Route{Customer: name}
}

// TransactionRoute builds the route for a single transaction view.
func TransactionRoute(id int64) Route {
	return Route{Transaction: strconv.FormatInt(id, 10)}
}

// ─── Views ──────────────────────────────────────────────────────────────────

// OverviewRow is one customer line on the overview level.
type OverviewRow struct {
	Name             string        `json:"name"`
	TotalDue         domain.Amount `json:"totalDue"`
	TransactionCount int           `json:"transactionCount"`
	Href             string        `json:"href"`
}

// CustomerView is the customer-detail level: the running total plus that
// customer's transactions, newest first.
type CustomerView struct {
	Name         string                   `json:"name"`
	TotalDue     domain.Amount            `json:"totalDue"`
	Transactions []domain.LoanTransaction `json:"transactions"`
}

// TransactionView is the single-transaction level. NotFound is a terminal
// rendering, not an error.
type TransactionView struct {
	NotFound    bool                    `json:"notFound,omitempty"`
	Transaction *domain.LoanTransaction `json:"transaction,omitempty"`
}

// View is the resolved result of entering a route. Exactly one of the
// level fields is populated, matching Kind. Redirected is set when an
// unknown customer fell back to the overview.
type View struct {
	Kind        ViewKind         `json:"-"`
	Redirected  bool             `json:"redirected,omitempty"`
	Overview    []OverviewRow    `json:"overview,omitempty"`
	Customer    *CustomerView    `json:"customer,omitempty"`
	Transaction *TransactionView `json:"transaction,omitempty"`
}

// Resolve enters the route and builds its view from fresh stored state.
//
// An unknown customer name is a recoverable condition: the view falls
// back to the overview (Redirected set). An unknown transaction id
// renders a terminal not-found view.
func (s *Service) Resolve(route Route) (View, error) {
	switch route.Kind() {
	case ViewTransactionDetail:
		tv, err := s.TransactionDetail(route.TransactionID())
		if err != nil {
			return View{}, err
		}
		return View{Kind: ViewTransactionDetail, Transaction: &tv}, nil

	case ViewCustomerDetail:
		cv, err := s.CustomerDetail(route.Customer)
		if err == domain.ErrCustomerNotFound {
			// Callers that hand us a still-encoded parameter get one
			// decode attempt before the fallback kicks in.
			if decoded, derr := url.QueryUnescape(route.Customer); derr == nil && decoded != route.Customer {
				cv, err = s.CustomerDetail(decoded)
			}
		}
		if err == domain.ErrCustomerNotFound {
			rows, oerr := s.Overview()
			if oerr != nil {
				return View{}, oerr
			}
			return View{Kind: ViewOverview, Redirected: true, Overview: rows}, nil
		}
		if err != nil {
			return View{}, err
		}
		return View{Kind: ViewCustomerDetail, Customer: &cv}, nil

	default:
		rows, err := s.Overview()
		if err != nil {
			return View{}, err
		}
		return View{Kind: ViewOverview, Overview: rows}, nil
	}
}

// Overview builds the alphabetical customer list with totals and counts.
func (s *Service) Overview() ([]OverviewRow, error) {
	grouped, err := s.Grouped()
	if err != nil {
		return nil, err
	}

	rows := make([]OverviewRow, 0, len(grouped))
	for _, name := range grouped.Names() {
		entry := grouped[name]
		rows = append(rows, OverviewRow{
			Name:             name,
			TotalDue:         entry.TotalDue,
			TransactionCount: len(entry.Transactions),
			Href:             "/ledger" + CustomerRoute(name).Query(),
		})
	}
	return rows, nil
}

// CustomerDetail builds the detail view for a named customer.
// Returns domain.ErrCustomerNotFound when the grouped view has no such
// key; the caller decides the fallback.
func (s *Service) CustomerDetail(name string) (CustomerView, error) {
	grouped, err := s.Grouped()
	if err != nil {
		return CustomerView{}, err
	}

	entry, ok := grouped[name]
	if !ok {
		return CustomerView{}, domain.ErrCustomerNotFound
	}

	txns := make([]domain.LoanTransaction, len(entry.Transactions))
	copy(txns, entry.Transactions)
	sortNewestFirst(txns)

	return CustomerView{
		Name:         name,
		TotalDue:     entry.TotalDue,
		Transactions: txns,
	}, nil
}

// TransactionDetail looks up a single transaction across the full ledger,
// not the grouped view, matching the modern or legacy id field.
func (s *Service) TransactionDetail(id int64) (TransactionView, error) {
	loans, err := s.store.Loans()
	if err != nil {
		return TransactionView{}, fmt.Errorf("load ledger: %w", err)
	}

	for i := range loans {
		if loans[i].Matches(id) {
			return TransactionView{Transaction: &loans[i]}, nil
		}
	}
	return TransactionView{NotFound: true}, nil
}
