package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
	"github.com/fivetwenty-io/namebright-client/pkg/nbclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Yes          = "yes"
	No           = "no"
	Masked       = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn           = errors.New("no credentials configured, use 'namebright login' first")
	ErrUnknownConfigKey      = errors.New("unknown configuration key")
	ErrInvalidOutputFormat   = errors.New("invalid output format (table, json, yaml)")
	ErrInvalidParamFormat    = errors.New("invalid parameter format, expected key=value")
	ErrAccountLoginRequired  = errors.New("account login is required")
	ErrAppNameRequired       = errors.New("application name is required")
	ErrAppSecretRequired     = errors.New("application secret is required")
	ErrNameserversNotApplied = errors.New("some nameservers were not applied")
)

// clientFactory builds the API client for a command. Tests replace it.
var clientFactory = CreateClient

// CreateClient creates a NameBright client from the CLI configuration.
func CreateClient() (namebright.Client, error) {
	config := loadConfig()

	if config.AccountLogin == "" && config.AppName == "" && config.AppSecret == "" {
		return nil, ErrNotLoggedIn
	}

	return newClient(config.AccountLogin, config.AppName, config.AppSecret, config.APIURL)
}

func newClient(accountLogin, appName, appSecret, apiURL string) (namebright.Client, error) {
	verbose := viper.GetBool(KeyVerbose)

	logger, err := NewCLILogger(verbose)
	if err != nil {
		return nil, err
	}

	client, err := nbclient.New(&namebright.Config{
		AccountLogin: accountLogin,
		AppName:      appName,
		AppSecret:    appSecret,
		APIURL:       apiURL,
		Debug:        verbose,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func outputFormat() (string, error) {
	output := viper.GetString(KeyOutput)

	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOutputFormat, output)
	}
}

// render writes data as JSON or YAML, or calls table for table output.
func render(w io.Writer, data interface{}, table func(*tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return writeJSON(w, data)
	case constants.FormatYAML:
		return writeYAML(w, data)
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", constants.JSONIndent)

	return encoder.Encode(data)
}

func writeYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer func() {
		_ = encoder.Close()
	}()

	return encoder.Encode(data)
}

func yesNo(value bool) string {
	if value {
		return Yes
	}

	return No
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
