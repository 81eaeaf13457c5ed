package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAccountCommand creates the account command.
func NewAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show account balance",
		Long:  "Display the balance of the NameBright account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory()
			if err != nil {
				return err
			}

			account, err := client.Account().Get(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			return render(cmd.OutOrStdout(), account, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Account Balance", fmt.Sprintf("%.2f", account.AccountBalance))
			})
		},
	}
}
