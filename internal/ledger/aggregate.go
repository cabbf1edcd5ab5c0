// Package ledger implements the loan-ledger core: grouping the transaction
// log by customer, the three-level drill-down views, and the mutations
// that append to or settle the ledger.
//
// Every view is re-derived from the store on each call; there is no
// in-memory aggregate to go stale, so a reload always reproduces the same
// state from persisted data.
package ledger

import "github.com/khata-pos/khata/internal/domain"

// GroupByCustomer builds the per-customer aggregate from the full ledger
// plus the customer directory.
//
// Guarantees:
//   - every distinct trimmed customer name in the ledger appears as a key,
//     with blanks bucketed under domain.UnnamedCustomer;
//   - every trimmed directory name appears as a key even with zero
//     activity, so quiet customers still show up;
//   - a ledger name absent from the directory still gets a key, which
//     self-heals orphaned or renamed customers;
//   - TotalDue is the exact sum of amounts; transactions keep ledger
//     storage order (callers re-sort for presentation).
//
// Malformed amounts have already been coerced to zero by decoding, so
// grouping never fails.
func GroupByCustomer(loans []domain.LoanTransaction, customers []domain.Customer) domain.GroupedLedger {
	grouped := make(domain.GroupedLedger)

	for _, txn := range loans {
		key := txn.CustomerKey()
		entry, ok := grouped[key]
		if !ok {
			entry = &domain.CustomerLedger{}
			grouped[key] = entry
		}
		entry.TotalDue = entry.TotalDue.Add(txn.AmountDue)
		entry.Transactions = append(entry.Transactions, txn)
	}

	for _, c := range customers {
		key := domain.NormalizeCustomer(c.Name)
		if _, ok := grouped[key]; !ok {
			grouped[key] = &domain.CustomerLedger{}
		}
	}

	return grouped
}
