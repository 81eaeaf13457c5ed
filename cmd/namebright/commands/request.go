package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
)

// NewRequestCommand creates the request command for raw API calls.
func NewRequestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "request METHOD PATH [KEY=VALUE...]",
		Short: "Send a raw API request",
		Long: `Send an authenticated request to any NameBright API path.

Parameters are sent as the query string for GET and as a form-encoded body
for every other method. Repeat a key to send it more than once.`,
		Example: `  namebright request GET /rest/account/domains page=2 domainsPerPage=50
  namebright request POST /rest/purchase/renew DomainName=example.com Years=1`,
		Args: cobra.MinimumNArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			path := args[1]

			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			client, err := clientFactory()
			if err != nil {
				return err
			}

			var result interface{}

			err = client.Do(commandContext(cmd), method, path, params, &result)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format == constants.FormatYAML {
				return writeYAML(cmd.OutOrStdout(), result)
			}

			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
}

// parseParams turns KEY=VALUE arguments into url.Values.
func parseParams(args []string) (url.Values, error) {
	params := url.Values{}

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParamFormat, arg)
		}

		params.Add(key, value)
	}

	return params, nil
}
