package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// NewDomainsCommand creates the domains command group.
func NewDomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domains",
		Aliases: []string{"domain"},
		Short:   "Manage domains",
		Long:    "List, inspect and renew domains registered with NameBright",
	}

	cmd.AddCommand(newDomainsListCommand())
	cmd.AddCommand(newDomainsGetCommand())
	cmd.AddCommand(newDomainsRenewCommand())

	return cmd
}

func newDomainsListCommand() *cobra.Command {
	var (
		allPages bool
		page     int
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		Long:  "List the domains of the account, one page or all of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			var (
				domains []namebright.Domain
				total   int
			)

			if allPages {
				iterator := client.Domains().Iterate(ctx, perPage)

				domains, err = iterator.All()
				if err != nil {
					return fmt.Errorf("failed to list domains: %w", err)
				}

				total = len(domains)
			} else {
				result, listErr := client.Domains().List(ctx, page, perPage)
				if listErr != nil {
					return fmt.Errorf("failed to list domains: %w", listErr)
				}

				domains = result.Domains
				total = result.ResultsTotal
			}

			return outputDomainsList(cmd, domains, total)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&page, "page", constants.FirstPage, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPerPage, "results per page")

	return cmd
}

func outputDomainsList(cmd *cobra.Command, domains []namebright.Domain, total int) error {
	if domains == nil {
		domains = []namebright.Domain{}
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format == constants.FormatTable && len(domains) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No domains found")

		return nil
	}

	err = render(cmd.OutOrStdout(), domains, func(table *tablewriter.Table) {
		table.Header("Domain", "TLD", "Status", "Expires", "Locked", "Auto Renew", "Privacy")

		for _, domain := range domains {
			_ = table.Append(
				domain.DomainName,
				orNotAvailable(publicSuffix(domain.DomainName)),
				titleStatus(domain.Status),
				orNotAvailable(domain.ExpirationDate),
				yesNo(domain.Locked),
				yesNo(domain.AutoRenew),
				yesNo(domain.WhoisPrivacy),
			)
		}
	})
	if err != nil {
		return err
	}

	if format == constants.FormatTable {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nShowing %d of %d domains\n", len(domains), total)
	}

	return nil
}

func newDomainsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get DOMAIN",
		Short: "Get domain details",
		Long:  "Display detailed information about a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			domain, err := client.Domains().Get(commandContext(cmd), name)
			if err != nil {
				if namebright.IsNotFound(err) {
					return fmt.Errorf("domain '%s' not found: %w", name, err)
				}

				return fmt.Errorf("failed to get domain: %w", err)
			}

			return render(cmd.OutOrStdout(), domain, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Domain", domain.DomainName)
				_ = table.Append("Public Suffix", orNotAvailable(publicSuffix(domain.DomainName)))
				_ = table.Append("Status", titleStatus(domain.Status))
				_ = table.Append("Expires", orNotAvailable(domain.ExpirationDate))
				_ = table.Append("Locked", yesNo(domain.Locked))
				_ = table.Append("Auto Renew", yesNo(domain.AutoRenew))
				_ = table.Append("WHOIS Privacy", yesNo(domain.WhoisPrivacy))
				_ = table.Append("Category", orNotAvailable(domain.Category))
				_ = table.Append("Upgraded", yesNo(domain.UpgradedDomain))
				_ = table.Append("Auth Code", maskAuthCode(domain.AuthCode))
			})
		},
	}
}

func newDomainsRenewCommand() *cobra.Command {
	var years int

	cmd := &cobra.Command{
		Use:   "renew DOMAIN",
		Short: "Renew a domain",
		Long:  "Place a renewal order for a domain. The order is charged to the account balance.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := normalizeDomainArg(args[0])
			if err != nil {
				return err
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			order, err := client.Purchase().Renew(commandContext(cmd), name, years)
			if err != nil {
				return fmt.Errorf("failed to renew domain: %w", err)
			}

			return render(cmd.OutOrStdout(), order, func(table *tablewriter.Table) {
				table.Header("Order", "Item", "Product", "Price")

				for _, item := range order.OrderItems {
					_ = table.Append(
						fmt.Sprintf("%d", order.OrderID),
						fmt.Sprintf("%d", item.OrderItemID),
						item.ProductText,
						fmt.Sprintf("%.2f", item.TotalPrice),
					)
				}

				table.Footer("", "", "Total", fmt.Sprintf("%.2f", order.TotalPrice))
			})
		},
	}

	cmd.Flags().IntVarP(&years, "years", "y", constants.MinRenewYears,
		fmt.Sprintf("renewal period in years (%d-%d)", constants.MinRenewYears, constants.MaxRenewYears))

	return cmd
}

func titleStatus(status string) string {
	if status == "" {
		return NotAvailable
	}

	return cases.Title(language.English).String(status)
}

func maskAuthCode(code string) string {
	if code == "" {
		return NotAvailable
	}

	return Masked
}
