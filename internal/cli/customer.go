package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerRenameCmd)
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage the customer directory",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := openServices()
		if err != nil {
			return err
		}
		defer svcs.close()

		customers, err := svcs.directory.List()
		if err != nil {
			return err
		}
		if len(customers) == 0 {
			fmt.Fprintln(os.Stdout, "No customers yet. Use 'khata customer add NAME'.")
			return nil
		}
		for _, c := range customers {
			fmt.Fprintf(os.Stdout, "%-28s %s\n", c.Name, c.ID)
		}
		return nil
	},
}

var customerAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a customer to the directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := openServices()
		if err != nil {
			return err
		}
		defer svcs.close()

		customer, err := svcs.directory.Add(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Customer %q added (%s).\n", customer.Name, customer.ID)
		return nil
	},
}

var customerRenameCmd = &cobra.Command{
	Use:   "rename ID NEW_NAME",
	Short: "Rename a customer by their directory id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := openServices()
		if err != nil {
			return err
		}
		defer svcs.close()

		customer, err := svcs.directory.Rename(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Customer %s renamed to %q.\n", customer.ID, customer.Name)
		return nil
	},
}
