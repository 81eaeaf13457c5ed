package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
)

// NewNameserversCommand creates the nameservers command group.
func NewNameserversCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nameservers",
		Aliases: []string{"ns"},
		Short:   "Manage domain nameservers",
		Long:    "List, add, delete and replace the nameservers of a domain",
	}

	cmd.AddCommand(newNameserversListCommand())
	cmd.AddCommand(newNameserversAddCommand())
	cmd.AddCommand(newNameserversDeleteCommand())
	cmd.AddCommand(newNameserversSetCommand())

	return cmd
}

type nameserverResult struct {
	Domain      string   `json:"domain"                yaml:"domain"`
	Nameservers []string `json:"nameservers"           yaml:"nameservers"`
	NotApplied  []string `json:"not_applied,omitempty" yaml:"not_applied,omitempty"`
}

func newNameserversListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list DOMAIN",
		Short: "List nameservers",
		Long:  "List the nameservers currently set for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			nameservers, err := client.Nameservers().List(commandContext(cmd), domain)
			if err != nil {
				return fmt.Errorf("failed to list nameservers: %w", err)
			}

			return outputNameservers(cmd, &nameserverResult{Domain: domain, Nameservers: nameservers})
		},
	}
}

func newNameserversAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add DOMAIN NAMESERVER",
		Short: "Add a nameserver",
		Long:  "Add one nameserver to a domain",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			nameserver := strings.TrimSpace(args[1])

			client, err := clientFactory()
			if err != nil {
				return err
			}

			echoed, err := client.Nameservers().Add(commandContext(cmd), domain, nameserver)
			if err != nil {
				return fmt.Errorf("failed to add nameserver: %w", err)
			}

			if echoed != nameserver {
				return fmt.Errorf("%w: %s (server answered %q)", ErrNameserversNotApplied, nameserver, echoed)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added nameserver %s to %s\n", nameserver, domain)

			return nil
		},
	}
}

func newNameserversDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DOMAIN [NAMESERVER]",
		Short: "Delete nameservers",
		Long:  "Delete one nameserver from a domain, or all of them when no nameserver is given",
		Args:  cobra.RangeArgs(1, constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if len(args) == 1 {
				err = client.Nameservers().DeleteAll(ctx, domain)
				if err != nil {
					return fmt.Errorf("failed to delete nameservers: %w", err)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted all nameservers of %s\n", domain)

				return nil
			}

			nameserver := strings.TrimSpace(args[1])

			err = client.Nameservers().Delete(ctx, domain, nameserver)
			if err != nil {
				return fmt.Errorf("failed to delete nameserver: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted nameserver %s from %s\n", nameserver, domain)

			return nil
		},
	}
}

func newNameserversSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set DOMAIN NAMESERVER...",
		Short: "Replace all nameservers",
		Long: fmt.Sprintf(`Replace the nameservers of a domain with %d to %d new ones.

The existing nameservers are deleted first, then each new one is added in
order. Nameservers that could not be added are reported and the command
exits with an error.`, constants.MinNameservers, constants.MaxNameservers),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			requested := make([]string, 0, len(args)-1)
			for _, arg := range args[1:] {
				requested = append(requested, strings.TrimSpace(arg))
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			applied, err := client.Nameservers().Set(commandContext(cmd), domain, requested)
			if err != nil {
				return fmt.Errorf("failed to set nameservers: %w", err)
			}

			result := &nameserverResult{
				Domain:      domain,
				Nameservers: applied,
				NotApplied:  missingFrom(requested, applied),
			}

			err = outputNameservers(cmd, result)
			if err != nil {
				return err
			}

			if len(result.NotApplied) > 0 {
				return fmt.Errorf("%w: %s", ErrNameserversNotApplied, strings.Join(result.NotApplied, ", "))
			}

			return nil
		},
	}
}

func outputNameservers(cmd *cobra.Command, result *nameserverResult) error {
	if result.Nameservers == nil {
		result.Nameservers = []string{}
	}

	return render(cmd.OutOrStdout(), result, func(table *tablewriter.Table) {
		table.Header("Domain", "Nameserver")

		for _, nameserver := range result.Nameservers {
			_ = table.Append(result.Domain, nameserver)
		}
	})
}

// missingFrom returns the entries of requested that are not in applied,
// matching each applied entry at most once.
func missingFrom(requested, applied []string) []string {
	remaining := make(map[string]int, len(applied))
	for _, nameserver := range applied {
		remaining[nameserver]++
	}

	var missing []string

	for _, nameserver := range requested {
		if remaining[nameserver] > 0 {
			remaining[nameserver]--

			continue
		}

		missing = append(missing, nameserver)
	}

	return missing
}
