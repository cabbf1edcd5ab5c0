package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khata-pos/khata/internal/domain"
	"github.com/khata-pos/khata/internal/ledger"
)

func init() {
	rootCmd.AddCommand(loanCmd)
	loanCmd.AddCommand(loanListCmd)
	loanCmd.AddCommand(loanShowCmd)
	loanCmd.AddCommand(loanViewCmd)
	loanCmd.AddCommand(loanAddCmd)
	loanCmd.AddCommand(loanPayCmd)
	loanCmd.AddCommand(loanSettleCmd)
	loanCmd.AddCommand(loanSummaryCmd)

	loanSettleCmd.Flags().BoolP("yes", "y", false, "Settle without asking for confirmation")
}

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Track customer debts and repayments",
	Long: `Track customer debts and repayments in the loan ledger.
Positive amounts are new debt, negative amounts are payments received.
Settling a transaction removes it from the ledger permanently.`,
}

// ─── loan list ──────────────────────────────────────────────────────────────

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every customer with their outstanding balance",
	RunE:  runLoanList,
}

func runLoanList(cmd *cobra.Command, args []string) error {
	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	rows, err := svcs.ledger.Overview()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "Ledger is empty. Use 'khata loan add' to record a debt.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-28s %14s %8s\n", "CUSTOMER", "TOTAL DUE", "ENTRIES")
	for _, row := range rows {
		fmt.Fprintf(os.Stdout, "%-28s %14s %8d\n",
			row.Name, row.TotalDue.String(), row.TransactionCount)
	}
	return nil
}

// ─── loan show ──────────────────────────────────────────────────────────────

var loanShowCmd = &cobra.Command{
	Use:   "show CUSTOMER",
	Short: "Show one customer's transactions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoanShow,
}

func runLoanShow(cmd *cobra.Command, args []string) error {
	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	// Unknown customers fall back to the overview rather than failing.
	view, err := svcs.ledger.Resolve(ledger.CustomerRoute(args[0]))
	if err != nil {
		return err
	}
	if view.Redirected {
		fmt.Fprintf(os.Stdout, "No customer %q in the ledger. Showing overview.\n\n", args[0])
		return runLoanList(cmd, nil)
	}

	c := view.Customer
	fmt.Fprintf(os.Stdout, "%s — total due %s\n\n", c.Name, c.TotalDue.String())
	for _, txn := range c.Transactions {
		fmt.Fprintf(os.Stdout, "  %d  %-20s %12s  %s\n",
			txn.ID(), txn.LoanType, txn.AmountDue.String(), txn.Date)
	}
	return nil
}

// ─── loan view ──────────────────────────────────────────────────────────────

var loanViewCmd = &cobra.Command{
	Use:   "view TRANSACTION_ID",
	Short: "Show the full line-item detail of one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoanView,
}

func runLoanView(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("transaction id must be numeric: %q", args[0])
	}

	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	view, err := svcs.ledger.TransactionDetail(id)
	if err != nil {
		return err
	}
	if view.NotFound {
		fmt.Fprintf(os.Stdout, "Transaction %d not found.\n", id)
		return nil
	}

	txn := view.Transaction
	fmt.Fprintf(os.Stdout, "Transaction %d\n", txn.ID())
	fmt.Fprintf(os.Stdout, "  Customer:  %s\n", txn.CustomerKey())
	fmt.Fprintf(os.Stdout, "  Date:      %s\n", txn.Date)
	fmt.Fprintf(os.Stdout, "  Type:      %s\n", txn.LoanType)
	fmt.Fprintf(os.Stdout, "  Amount:    %s\n", txn.AmountDue.String())
	if !txn.Discount.IsZero() {
		fmt.Fprintf(os.Stdout, "  Discount:  %s\n", txn.Discount.String())
	}
	if len(txn.Items) == 0 {
		fmt.Fprintln(os.Stdout, "  Items:     (manual balance adjustment)")
		return nil
	}
	fmt.Fprintln(os.Stdout, "  Items:")
	for _, item := range txn.Items {
		fmt.Fprintf(os.Stdout, "    %-24s x%-4d @ %s\n",
			item.Name, item.Quantity, item.SalePrice.String())
	}
	return nil
}

// ─── loan add / loan pay ────────────────────────────────────────────────────

var loanAddCmd = &cobra.Command{
	Use:   "add CUSTOMER AMOUNT",
	Short: "Record new debt for a customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addEntry(args[0], args[1], false)
	},
}

var loanPayCmd = &cobra.Command{
	Use:   "pay CUSTOMER AMOUNT",
	Short: "Record a payment received from a customer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addEntry(args[0], args[1], true)
	},
}

func addEntry(customer, rawAmount string, payment bool) error {
	amount, err := domain.NewAmount(rawAmount)
	if err != nil {
		return fmt.Errorf("amount must be a number: %q", rawAmount)
	}
	if payment {
		// Payments are entered as positive numbers and stored negative.
		amount = amount.Neg()
	}

	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	dispatcher := ledger.NewDispatcher(svcs.ledger)
	next, err := dispatcher.Dispatch(ledger.Action{
		Kind:     ledger.ActionAddEntry,
		Customer: customer,
		Amount:   amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Recorded %s for %s.\n",
		domain.ClassifyLoan(amount), strings.TrimSpace(customer))
	fmt.Fprintf(os.Stdout, "View with: khata loan show %q  (/ledger%s)\n",
		strings.TrimSpace(customer), next.Query())
	return nil
}

// ─── loan settle ────────────────────────────────────────────────────────────

var loanSettleCmd = &cobra.Command{
	Use:   "settle TRANSACTION_ID",
	Short: "Permanently remove a transaction from the ledger",
	Long: `Permanently remove a transaction from the ledger.
This is a hard delete: the entry vanishes from every balance, which is
how this ledger represents a settled debt. Asks for confirmation unless
--yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoanSettle,
}

func runLoanSettle(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("transaction id must be numeric: %q", args[0])
	}
	assumeYes, _ := cmd.Flags().GetBool("yes")

	confirmed := assumeYes
	if !confirmed {
		fmt.Fprintf(os.Stdout, "Settle transaction %d? This cannot be undone. [y/N]: ", id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		confirmed = strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	dispatcher := ledger.NewDispatcher(svcs.ledger)
	if _, err := dispatcher.Dispatch(ledger.Action{
		Kind:          ledger.ActionSettle,
		TransactionID: id,
		Confirmed:     confirmed,
	}); err != nil {
		return err
	}

	if !confirmed {
		fmt.Fprintln(os.Stdout, "Aborted. Nothing settled.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Transaction %d settled.\n", id)
	return nil
}

// ─── loan summary ───────────────────────────────────────────────────────────

var loanSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show ledger-wide totals",
	RunE:  runLoanSummary,
}

func runLoanSummary(cmd *cobra.Command, args []string) error {
	svcs, err := openServices()
	if err != nil {
		return err
	}
	defer svcs.close()

	sum, err := svcs.ledger.Summarize()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Customers:            %d\n", sum.CustomerCount)
	fmt.Fprintf(os.Stdout, "Transactions:         %d\n", sum.TransactionCount)
	fmt.Fprintf(os.Stdout, "Customers in debt:    %d\n", sum.CustomersInDebt)
	fmt.Fprintf(os.Stdout, "Customers in credit:  %d\n", sum.CustomersInCredit)
	fmt.Fprintf(os.Stdout, "Total outstanding:    %s\n", sum.TotalOutstanding.String())
	fmt.Fprintf(os.Stdout, "Total credit held:    %s\n", sum.TotalCredit.String())
	fmt.Fprintf(os.Stdout, "Net due:              %s\n", sum.NetDue.String())
	return nil
}
