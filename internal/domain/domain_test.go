package domain

import (
	"encoding/json"
	"testing"
	"time"
)

// ─── Amount ─────────────────────────────────────────────────────────────────

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", `1500.25`, "1500.25"},
		{"negative number", `-2000`, "-2000"},
		{"numeric string", `"350"`, "350"},
		{"garbage string", `"not a number"`, "0"},
		{"null", `null`, "0"},
		{"object", `{}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v — decoding must be forgiving", tt.input, err)
			}
			if a.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, a.String(), tt.want)
			}
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	a := AmountFromInt(5000)
	b := AmountFromFloat(-2000.50)

	if got := a.Add(b).String(); got != "2999.5" {
		t.Errorf("5000 + (-2000.50) = %s, want 2999.5", got)
	}
	if got := a.Sub(b).String(); got != "7000.5" {
		t.Errorf("5000 - (-2000.50) = %s, want 7000.5", got)
	}
	if !b.Neg().Equal(AmountFromFloat(2000.50)) {
		t.Error("Neg() should flip the sign exactly")
	}
}

func TestNewAmount_Invalid(t *testing.T) {
	if _, err := NewAmount("abc"); err == nil {
		t.Error("NewAmount(abc) should fail — direct input is not coerced")
	}
}

// ─── Loan Classification ────────────────────────────────────────────────────

func TestClassifyLoan(t *testing.T) {
	if got := ClassifyLoan(AmountFromInt(500)); got != LoanNewDebt {
		t.Errorf("ClassifyLoan(500) = %q, want %q", got, LoanNewDebt)
	}
	if got := ClassifyLoan(AmountFromInt(-500)); got != LoanPaymentReceived {
		t.Errorf("ClassifyLoan(-500) = %q, want %q", got, LoanPaymentReceived)
	}
}

// ─── Transaction Identity ───────────────────────────────────────────────────

func TestLoanTransaction_Matches(t *testing.T) {
	modern := LoanTransaction{TransactionID: 1700000000001}
	legacy := LoanTransaction{LegacyID: 42}

	if !modern.Matches(1700000000001) {
		t.Error("modern id should match transactionId")
	}
	if !legacy.Matches(42) {
		t.Error("legacy rows keyed by id must still match")
	}
	if modern.Matches(0) || legacy.Matches(0) {
		t.Error("zero never matches")
	}
	if legacy.ID() != 42 {
		t.Errorf("ID() = %d, want legacy 42", legacy.ID())
	}
}

func TestLoanTransaction_CustomerKey(t *testing.T) {
	tests := []struct {
		customer string
		want     string
	}{
		{"Ali Khan", "Ali Khan"},
		{"  Ali Khan  ", "Ali Khan"},
		{"", UnnamedCustomer},
		{"   ", UnnamedCustomer},
	}
	for _, tt := range tests {
		got := (LoanTransaction{Customer: tt.customer}).CustomerKey()
		if got != tt.want {
			t.Errorf("CustomerKey(%q) = %q, want %q", tt.customer, got, tt.want)
		}
	}
}

// ─── ID Source ──────────────────────────────────────────────────────────────

func TestIDSource_MonotonicWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	ids := NewIDSourceAt(func() time.Time { return fixed })

	first := ids.Next()
	second := ids.Next()
	third := ids.Next()

	if first != 1700000000000 {
		t.Errorf("first id = %d, want the millisecond timestamp", first)
	}
	if second <= first || third <= second {
		t.Errorf("ids not strictly increasing: %d, %d, %d", first, second, third)
	}
}

func TestIDSource_FollowsClock(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	ids := NewIDSourceAt(func() time.Time { return now })

	ids.Next()
	now = now.Add(5 * time.Millisecond)

	if got := ids.Next(); got != 1700000000005 {
		t.Errorf("id = %d, want clock value once it has advanced", got)
	}
}

// ─── Grouped View ───────────────────────────────────────────────────────────

func TestGroupedLedger_Names(t *testing.T) {
	g := GroupedLedger{
		"Zara":  &CustomerLedger{},
		"Ali":   &CustomerLedger{},
		"Mehak": &CustomerLedger{},
	}
	names := g.Names()
	want := []string{"Ali", "Mehak", "Zara"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}
