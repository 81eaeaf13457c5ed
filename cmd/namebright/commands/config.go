package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
)

// Configuration keys, shared by the config file, viper and NAMEBRIGHT_* env vars.
const (
	KeyAPIURL       = "api_url"
	KeyAccountLogin = "account_login"
	KeyAppName      = "app_name"
	KeyAppSecret    = "app_secret"
	KeyOutput       = "output"
	KeyVerbose      = "verbose"
)

// settableKeys lists the keys accepted by 'config set' and 'config unset'.
var settableKeys = map[string]string{
	KeyAPIURL:       "API root URL",
	KeyAccountLogin: "NameBright account login",
	KeyAppName:      "API application name",
	KeyAppSecret:    "API application secret",
	KeyOutput:       "default output format",
}

// Config represents the CLI configuration.
type Config struct {
	APIURL       string `json:"api_url,omitempty"       yaml:"api_url,omitempty"`
	AccountLogin string `json:"account_login,omitempty" yaml:"account_login,omitempty"`
	AppName      string `json:"app_name,omitempty"      yaml:"app_name,omitempty"`
	AppSecret    string `json:"app_secret,omitempty"    yaml:"app_secret,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
}

// Masked returns a copy safe to print.
func (c *Config) Masked() *Config {
	masked := *c
	if masked.AppSecret != "" {
		masked.AppSecret = Masked
	}

	return &masked
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the NameBright CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with the application secret masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig().Masked()

			return render(cmd.OutOrStdout(), config, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Config File", orNotAvailable(configFilePath()))
				_ = table.Append("API URL", orNotAvailable(config.APIURL))
				_ = table.Append("Account Login", orNotAvailable(config.AccountLogin))
				_ = table.Append("App Name", orNotAvailable(config.AppName))
				_ = table.Append("App Secret", orNotAvailable(config.AppSecret))
				_ = table.Append("Output", orNotAvailable(config.Output))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value. Keys: " + strings.Join(configKeys(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func configKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for key := range settableKeys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case KeyAPIURL:
		config.APIURL = value
	case KeyAccountLogin:
		config.AccountLogin = value
	case KeyAppName:
		config.AppName = value
	case KeyAppSecret:
		config.AppSecret = value
	case KeyOutput:
		switch value {
		case "", constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
	}

	return nil
}

// loadConfig reads the effective configuration from viper: flags, then
// NAMEBRIGHT_* environment variables, then the config file.
func loadConfig() *Config {
	return &Config{
		APIURL:       viper.GetString(KeyAPIURL),
		AccountLogin: viper.GetString(KeyAccountLogin),
		AppName:      viper.GetString(KeyAppName),
		AppSecret:    viper.GetString(KeyAppSecret),
		Output:       viper.GetString(KeyOutput),
	}
}

// configFilePath returns the file the configuration is written to.
func configFilePath() string {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile
	}

	if configFile := viper.GetString("config"); configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml")
}

// saveConfigStruct writes config as YAML, readable by the owner only, and
// refreshes viper so later reads see the new values.
func saveConfigStruct(config *Config) error {
	configFile := configFilePath()
	if configFile == "" {
		return fmt.Errorf("failed to determine config file location: %w", os.ErrNotExist)
	}

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	viper.Set(KeyAPIURL, config.APIURL)
	viper.Set(KeyAccountLogin, config.AccountLogin)
	viper.Set(KeyAppName, config.AppName)
	viper.Set(KeyAppSecret, config.AppSecret)
	viper.Set(KeyOutput, config.Output)

	return nil
}
