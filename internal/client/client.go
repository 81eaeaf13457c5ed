package client

import (
	"context"
	"errors"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/namebright-client/internal/auth"
	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the namebright.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       namebright.Logger

	// Resource clients
	account     namebright.AccountClient
	domains     namebright.DomainsClient
	nameservers namebright.NameserversClient
	purchase    namebright.PurchaseClient
}

// New creates a NameBright API client that authenticates with the
// client-credentials grant. It fails with a configuration error when any
// credential is missing; no request is sent.
func New(config *namebright.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL := apiURL(config)
	transport := createTransport(config)

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent
	}

	tokenManager, err := auth.NewClientCredentialsManager(&auth.ClientCredentialsConfig{
		TokenURL:     baseURL + constants.TokenPath,
		AccountLogin: config.AccountLogin,
		AppName:      config.AppName,
		AppSecret:    config.AppSecret,
		UserAgent:    userAgent,
		HTTPClient:   transport,
		Logger:       config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return newClient(config, baseURL, tokenManager, transport), nil
}

// NewWithTokenManager creates a client with a custom token manager. The
// credentials in config are not used.
func NewWithTokenManager(config *namebright.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, namebright.ErrConfigRequired
	}

	if tokenManager == nil {
		return nil, ErrNoTokenManagerConfigured
	}

	return newClient(config, apiURL(config), tokenManager, createTransport(config)), nil
}

func newClient(config *namebright.Config, baseURL string, tokenManager auth.TokenManager, transport *retryablehttp.Client) *Client {
	httpClient := http.NewClient(baseURL, tokenManager, createHTTPClientOptions(config, transport)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       namebright.LoggerOrNop(config.Logger),
	}

	client.initializeResourceClients()

	return client
}

// createTransport builds the retryablehttp client shared by the token
// manager and the API calls.
func createTransport(config *namebright.Config) *retryablehttp.Client {
	return http.NewRetryableClient(config.HTTPClient, config.HTTPTimeout, config.Logger)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *namebright.Config, transport *retryablehttp.Client) []http.Option {
	httpOpts := []http.Option{http.WithRetryableClient(transport)}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

func apiURL(config *namebright.Config) string {
	if config.APIURL != "" {
		return config.APIURL
	}

	return constants.DefaultAPIURL
}

func (c *Client) initializeResourceClients() {
	c.account = NewAccountClient(c.httpClient, c.logger)
	c.domains = NewDomainsClient(c.httpClient, c.logger)
	c.nameservers = NewNameserversClient(c.httpClient, c.logger)
	c.purchase = NewPurchaseClient(c.httpClient, c.logger)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Account implements namebright.Client.Account.
func (c *Client) Account() namebright.AccountClient {
	return c.account
}

// Domains implements namebright.Client.Domains.
func (c *Client) Domains() namebright.DomainsClient {
	return c.domains
}

// Nameservers implements namebright.Client.Nameservers.
func (c *Client) Nameservers() namebright.NameserversClient {
	return c.nameservers
}

// Purchase implements namebright.Client.Purchase.
func (c *Client) Purchase() namebright.PurchaseClient {
	return c.purchase
}

// Do implements namebright.RawClient.Do.
func (c *Client) Do(ctx context.Context, method, path string, params interface{}, out interface{}) error {
	c.logger.Debug("request", map[string]interface{}{
		"method": method,
		"path":   path,
	})

	return c.httpClient.DoJSON(ctx, &http.Request{
		Method: method,
		Path:   path,
		Params: params,
	}, out)
}
