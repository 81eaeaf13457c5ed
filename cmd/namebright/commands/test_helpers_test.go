package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
	"github.com/fivetwenty-io/namebright-client/pkg/nbclient"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// useTestAPI points clientFactory at an httptest server that issues a token
// and hands every other request to handler. Viper state and the factory are
// restored when the test ends.
func useTestAPI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/token" {
			_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3600}`))

			return
		}

		handler(w, r)
	}))

	previous := clientFactory
	clientFactory = func() (namebright.Client, error) {
		return nbclient.New(&namebright.Config{
			AccountLogin: "acme",
			AppName:      "cli-test",
			AppSecret:    "secret",
			APIURL:       server.URL,
		})
	}

	t.Cleanup(func() {
		clientFactory = previous

		server.Close()
		viper.Reset()
	})
}

// runCommand executes cmd with args and returns what it printed.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func setOutput(t *testing.T, format string) {
	t.Helper()

	viper.Set(KeyOutput, format)
	t.Cleanup(viper.Reset)
}

func requireJSON(t *testing.T, expected, actual string) {
	t.Helper()

	require.JSONEq(t, expected, actual)
}
