package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		accountLogin string
		appName      string
		appSecret    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store and verify API credentials",
		Long: `Store the NameBright account login, API application name and secret.

The credentials are checked by fetching the account balance before they are
saved. The secret is prompted for without echo when not given as a flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			reader := bufio.NewReader(cmd.InOrStdin())

			var err error

			accountLogin, err = promptIfEmpty(cmd, reader, accountLogin, config.AccountLogin, "Account login: ")
			if err != nil {
				return err
			}

			if accountLogin == "" {
				return ErrAccountLoginRequired
			}

			appName, err = promptIfEmpty(cmd, reader, appName, config.AppName, "Application name: ")
			if err != nil {
				return err
			}

			if appName == "" {
				return ErrAppNameRequired
			}

			if appSecret == "" {
				appSecret, err = readSecret(cmd, reader, "Application secret: ")
				if err != nil {
					return err
				}
			}

			if appSecret == "" {
				return ErrAppSecretRequired
			}

			apiURL := viper.GetString(KeyAPIURL)

			client, err := clientFactoryWithCredentials(accountLogin, appName, appSecret, apiURL)
			if err != nil {
				return err
			}

			account, err := client.Account().Get(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			config.AccountLogin = accountLogin
			config.AppName = appName
			config.AppSecret = appSecret
			config.APIURL = apiURL

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s). Account balance: %.2f\n",
				accountLogin, appName, account.AccountBalance)

			return nil
		},
	}

	cmd.Flags().StringVarP(&accountLogin, "account-login", "u", "", "NameBright account login")
	cmd.Flags().StringVar(&appName, "app-name", "", "API application name")
	cmd.Flags().StringVar(&appSecret, "app-secret", "", "API application secret (prompted if omitted)")

	return cmd
}

// clientFactoryWithCredentials builds a client for explicit credentials. Tests
// replace it.
var clientFactoryWithCredentials = newClient

// promptIfEmpty returns value, or asks for it showing current as default.
func promptIfEmpty(cmd *cobra.Command, reader *bufio.Reader, value, current, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	if current != "" {
		prompt = strings.TrimSuffix(prompt, ": ") + " [" + current + "]: "
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}

	return line, nil
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command, reader *bufio.Reader, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), prompt)

	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))

		_, _ = fmt.Fprintln(cmd.OutOrStdout())

		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(line), nil
}
