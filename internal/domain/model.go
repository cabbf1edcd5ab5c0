// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of the application: it depends on nothing
// except the decimal library used for money arithmetic.
package domain

import (
	"sort"
	"strings"
)

// UnnamedCustomer is the bucket for ledger rows whose customer field is
// blank or missing. Grouping never drops a transaction.
const UnnamedCustomer = "Unnamed Customer"

// ─── Customer Directory ─────────────────────────────────────────────────────

// Customer is one entry in the customer directory. The display name is the
// historical natural key; ID is the stable surrogate stamped on rows
// created through this application so a rename cannot orphan them.
type Customer struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// ─── Loan Ledger ────────────────────────────────────────────────────────────

// LoanType classifies a ledger entry by the sign of its amount.
// Informational only; arithmetic treats both signs identically.
type LoanType string

const (
	LoanNewDebt         LoanType = "New Debt"
	LoanPaymentReceived LoanType = "Payment Received"
)

// ClassifyLoan returns the loan type for a signed amount.
func ClassifyLoan(amount Amount) LoanType {
	if amount.Sign() < 0 {
		return LoanPaymentReceived
	}
	return LoanNewDebt
}

// LineItem is one sold item on an invoice-style ledger entry.
type LineItem struct {
	Name      string `json:"name"`
	Brand     string `json:"brand,omitempty"`
	Type      string `json:"type,omitempty"`
	Quantity  int64  `json:"quantity"`
	SalePrice Amount `json:"salePrice"`
}

// LoanTransaction is one entry in the loan ledger. Positive AmountDue is
// new debt, negative is a repayment; zero is disallowed at creation.
//
// Older stored rows carry the identifier under "id" instead of
// "transactionId"; lookups must honor both.
type LoanTransaction struct {
	TransactionID int64      `json:"transactionId,omitempty"`
	LegacyID      int64      `json:"id,omitempty"`
	CustomerID    string     `json:"customerId,omitempty"`
	Customer      string     `json:"customer"`
	Date          string     `json:"date,omitempty"`
	LoanType      LoanType   `json:"loanType,omitempty"`
	AmountDue     Amount     `json:"amountDue"`
	Items         []LineItem `json:"items,omitempty"`
	TotalSale     Amount     `json:"totalSale"`
	Discount      Amount     `json:"discount"`
}

// ID returns the effective identifier, preferring the modern field.
func (t LoanTransaction) ID() int64 {
	if t.TransactionID != 0 {
		return t.TransactionID
	}
	return t.LegacyID
}

// Matches reports whether this transaction carries the given identifier
// under either the modern or the legacy key.
func (t LoanTransaction) Matches(id int64) bool {
	return id != 0 && (t.TransactionID == id || t.LegacyID == id)
}

// CustomerKey returns the grouping key for this transaction: the trimmed
// customer name, or the unnamed bucket when blank.
func (t LoanTransaction) CustomerKey() string {
	return NormalizeCustomer(t.Customer)
}

// NormalizeCustomer trims a display name, mapping blanks to the unnamed
// bucket. Every grouping key in the ledger passes through here.
func NormalizeCustomer(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return UnnamedCustomer
	}
	return name
}

// ─── Grouped View ───────────────────────────────────────────────────────────

// CustomerLedger is the per-customer slice of the grouped view: the running
// total plus that customer's transactions in ledger storage order.
type CustomerLedger struct {
	TotalDue     Amount
	Transactions []LoanTransaction
}

// GroupedLedger maps trimmed customer name → per-customer aggregate.
// Derived on every read, never persisted.
type GroupedLedger map[string]*CustomerLedger

// Names returns all customer keys in alphabetical order.
func (g GroupedLedger) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
