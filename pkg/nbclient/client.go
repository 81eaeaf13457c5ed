// Package nbclient provides the main entry point for creating NameBright API clients
package nbclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/namebright-client/internal/client"
	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// New creates a NameBright API client. The config is copied; the caller's
// value is never modified. No request is sent until the first call.
func New(config *namebright.Config) (namebright.Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	normalized := *config

	normalized.APIURL, err = NormalizeAPIURL(config.APIURL)
	if err != nil {
		return nil, err
	}

	nbClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return nbClient, nil
}

// NewWithCredentials creates a client for the default API root.
func NewWithCredentials(accountLogin, appName, appSecret string) (namebright.Client, error) {
	return New(&namebright.Config{
		AccountLogin: accountLogin,
		AppName:      appName,
		AppSecret:    appSecret,
	})
}

// NormalizeAPIURL trims a trailing slash and adds "https://" when the URL has
// no scheme. An empty value yields the default API root.
func NormalizeAPIURL(apiURL string) (string, error) {
	apiURL = strings.TrimSuffix(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		return constants.DefaultAPIURL, nil
	}

	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		apiURL = "https://" + apiURL
	}

	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", namebright.ErrInvalidAPIURL, apiURL)
	}

	return apiURL, nil
}
