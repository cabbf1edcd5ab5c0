package ledger

import (
	"encoding/json"
	"testing"

	"github.com/khata-pos/khata/internal/domain"
)

func txn(id int64, customer string, amount int64) domain.LoanTransaction {
	return domain.LoanTransaction{
		TransactionID: id,
		Customer:      customer,
		AmountDue:     domain.AmountFromInt(amount),
	}
}

func TestGroupByCustomer_Completeness(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(1, "Ali", 5000),
		txn(2, " Ali ", 1000), // same customer after trimming
		txn(3, "Orphan", 300), // not in directory, self-heals
	}
	customers := []domain.Customer{
		{ID: "c1", Name: "Ali"},
		{ID: "c2", Name: "Quiet"}, // zero activity, still appears
	}

	grouped := GroupByCustomer(loans, customers)

	if len(grouped) != 3 {
		t.Fatalf("grouped has %d keys, want 3 (Ali, Orphan, Quiet): %v", len(grouped), grouped.Names())
	}
	for _, name := range []string{"Ali", "Orphan", "Quiet"} {
		if _, ok := grouped[name]; !ok {
			t.Errorf("missing key %q", name)
		}
	}
}

func TestGroupByCustomer_SumInvariant(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(1, "Ali", 5000),
		txn(2, "Ali", -2000),
		txn(3, "Ali", 750),
	}

	grouped := GroupByCustomer(loans, nil)

	if got := grouped["Ali"].TotalDue; !got.Equal(domain.AmountFromInt(3750)) {
		t.Errorf("TotalDue = %s, want 3750", got.String())
	}
	if n := len(grouped["Ali"].Transactions); n != 3 {
		t.Errorf("transaction count = %d, want 3", n)
	}
}

func TestGroupByCustomer_NegativeBalanceAllowed(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(1, "Ali", 1000),
		txn(2, "Ali", -2500),
	}

	grouped := GroupByCustomer(loans, nil)
	if got := grouped["Ali"].TotalDue; !got.Equal(domain.AmountFromInt(-1500)) {
		t.Errorf("TotalDue = %s, want -1500 — overpayment is plain arithmetic", got.String())
	}
}

func TestGroupByCustomer_ZeroActivityCustomer(t *testing.T) {
	customers := []domain.Customer{{Name: "  Mehak  "}}

	grouped := GroupByCustomer(nil, customers)

	entry, ok := grouped["Mehak"]
	if !ok {
		t.Fatal("directory customer missing from grouped view")
	}
	if !entry.TotalDue.IsZero() {
		t.Errorf("TotalDue = %s, want 0", entry.TotalDue.String())
	}
	if len(entry.Transactions) != 0 {
		t.Errorf("transactions = %d, want 0", len(entry.Transactions))
	}
}

func TestGroupByCustomer_UnnamedBucket(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(1, "", 900),
		txn(2, "   ", 100),
	}

	grouped := GroupByCustomer(loans, nil)

	entry, ok := grouped[domain.UnnamedCustomer]
	if !ok {
		t.Fatalf("blank customers should group under %q", domain.UnnamedCustomer)
	}
	if !entry.TotalDue.Equal(domain.AmountFromInt(1000)) {
		t.Errorf("TotalDue = %s, want 1000", entry.TotalDue.String())
	}
}

func TestGroupByCustomer_PreservesLedgerOrder(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(30, "Ali", 1),
		txn(10, "Ali", 1),
		txn(20, "Ali", 1),
	}

	grouped := GroupByCustomer(loans, nil)

	got := grouped["Ali"].Transactions
	for i, wantID := range []int64{30, 10, 20} {
		if got[i].TransactionID != wantID {
			t.Fatalf("position %d has id %d, want %d — storage order must be preserved", i, got[i].TransactionID, wantID)
		}
	}
}

func TestGroupByCustomer_Idempotent(t *testing.T) {
	loans := []domain.LoanTransaction{
		txn(1, "Ali", 5000),
		txn(2, "Zara", -100),
	}
	customers := []domain.Customer{{Name: "Quiet"}}

	first := GroupByCustomer(loans, customers)
	second := GroupByCustomer(loans, customers)

	if len(first) != len(second) {
		t.Fatalf("re-grouping changed key count: %d vs %d", len(first), len(second))
	}
	for name, entry := range first {
		other, ok := second[name]
		if !ok {
			t.Fatalf("re-grouping lost key %q", name)
		}
		if !entry.TotalDue.Equal(other.TotalDue) {
			t.Errorf("%q: TotalDue %s vs %s", name, entry.TotalDue.String(), other.TotalDue.String())
		}
		if len(entry.Transactions) != len(other.Transactions) {
			t.Errorf("%q: transaction count %d vs %d", name, len(entry.Transactions), len(other.Transactions))
		}
	}
}

func TestGroupByCustomer_MalformedAmountCoercedToZero(t *testing.T) {
	// Malformed amounts are coerced at decode time; grouping sees zero.
	raw := `[
		{"transactionId": 1, "customer": "Ali", "amountDue": "garbage"},
		{"transactionId": 2, "customer": "Ali", "amountDue": 500}
	]`
	var loans []domain.LoanTransaction
	if err := json.Unmarshal([]byte(raw), &loans); err != nil {
		t.Fatalf("decode: %v", err)
	}

	grouped := GroupByCustomer(loans, nil)
	if got := grouped["Ali"].TotalDue; !got.Equal(domain.AmountFromInt(500)) {
		t.Errorf("TotalDue = %s, want 500 (garbage coerced to 0)", got.String())
	}
	if n := len(grouped["Ali"].Transactions); n != 2 {
		t.Errorf("transactions = %d, want 2 — coercion never drops rows", n)
	}
}
