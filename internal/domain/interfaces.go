package domain

// ─── Persistence Contract ───────────────────────────────────────────────────
// Every page of the application shares this storage contract and nothing
// else. Infrastructure implements it; the ledger core depends on it.
//
// Reads are forgiving: an absent or unparsable collection yields an empty
// slice, never an error. Errors surface only for real storage trouble.
// Writes fully overwrite the named collection.

// Store is the shared persistence contract.
type Store interface {
	// Loans returns the full loan ledger in storage order.
	Loans() ([]LoanTransaction, error)

	// SaveLoans overwrites the loan ledger.
	SaveLoans(loans []LoanTransaction) error

	// Customers returns the customer directory.
	Customers() ([]Customer, error)

	// SaveCustomers overwrites the customer directory.
	SaveCustomers(customers []Customer) error
}
