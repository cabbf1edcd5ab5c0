package ledger

import (
	"fmt"

	"github.com/khata-pos/khata/internal/domain"
)

// ─── Command Dispatch ───────────────────────────────────────────────────────
// User actions are a small closed set. Each action maps through a typed
// dispatch table to a handler that applies any mutation and returns the
// route to re-enter, keeping the action vocabulary decoupled from any
// rendering technology.

// ActionKind discriminates a user action.
type ActionKind string

const (
	ActionSelectCustomer    ActionKind = "select_customer"
	ActionSelectTransaction ActionKind = "select_transaction"
	ActionAddEntry          ActionKind = "add_entry"
	ActionSettle            ActionKind = "settle"
	ActionBack              ActionKind = "back"
)

// Action is one user action with its parameters. Confirmed carries the
// result of the interactive confirmation for destructive actions.
type Action struct {
	Kind          ActionKind
	Customer      string
	Amount        domain.Amount
	TransactionID int64
	Confirmed     bool
}

// Dispatcher routes actions to handlers.
type Dispatcher struct {
	svc      *Service
	handlers map[ActionKind]func(Action) (Route, error)
}

// NewDispatcher builds the dispatch table over a ledger service.
func NewDispatcher(svc *Service) *Dispatcher {
	d := &Dispatcher{svc: svc}
	d.handlers = map[ActionKind]func(Action) (Route, error){
		ActionSelectCustomer:    d.selectCustomer,
		ActionSelectTransaction: d.selectTransaction,
		ActionAddEntry:          d.addEntry,
		ActionSettle:            d.settle,
		ActionBack:              d.back,
	}
	return d
}

// Dispatch applies the action and returns the next route.
func (d *Dispatcher) Dispatch(a Action) (Route, error) {
	h, ok := d.handlers[a.Kind]
	if !ok {
		return Route{}, fmt.Errorf("unknown action %q", a.Kind)
	}
	return h(a)
}

func (d *Dispatcher) selectCustomer(a Action) (Route, error) {
	return CustomerRoute(a.Customer), nil
}

func (d *Dispatcher) selectTransaction(a Action) (Route, error) {
	return TransactionRoute(a.TransactionID), nil
}

// addEntry confirms a draft entry. Validation failures propagate so the
// caller can surface them; the draft itself was never persisted.
func (d *Dispatcher) addEntry(a Action) (Route, error) {
	txn, err := d.svc.AddLoanOrPayment(a.Customer, a.Amount)
	if err != nil {
		return Route{}, err
	}
	return CustomerRoute(txn.Customer), nil
}

// settle deletes the transaction after confirmation. A declined
// confirmation aborts with no mutation and stays on the customer view;
// a confirmed settle redirects to the overview.
func (d *Dispatcher) settle(a Action) (Route, error) {
	if !a.Confirmed {
		return CustomerRoute(a.Customer), nil
	}
	if err := d.svc.Settle(a.TransactionID); err != nil {
		return Route{}, err
	}
	return Route{}, nil
}

// back returns to the customer view when one is known, else the overview.
func (d *Dispatcher) back(a Action) (Route, error) {
	if a.Customer != "" {
		return CustomerRoute(a.Customer), nil
	}
	return Route{}, nil
}
