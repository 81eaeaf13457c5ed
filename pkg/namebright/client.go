package namebright

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// AccountClient provides access to the account summary.
type AccountClient interface {
	Get(ctx context.Context) (*Account, error)
}

// DomainsClient provides access to the domains of the account.
type DomainsClient interface {
	List(ctx context.Context, page, perPage int) (*DomainsPage, error)
	Get(ctx context.Context, domain string) (*Domain, error)
	Iterate(ctx context.Context, perPage int) *DomainIterator
}

// NameserversClient manages the nameservers of a domain.
type NameserversClient interface {
	List(ctx context.Context, domain string) ([]string, error)
	Add(ctx context.Context, domain, nameserver string) (string, error)
	Delete(ctx context.Context, domain, nameserver string) error
	DeleteAll(ctx context.Context, domain string) error
	// Set replaces every nameserver of domain and returns the ones the API
	// confirmed, in the order they were applied.
	Set(ctx context.Context, domain string, nameservers []string) ([]string, error)
}

// PurchaseClient provides access to purchase operations.
type PurchaseClient interface {
	Renew(ctx context.Context, domain string, years int) (*RenewResponse, error)
}

// RawClient issues arbitrary authenticated calls for endpoints that have no
// typed wrapper. params may be url.Values, map[string]interface{}, or a struct
// with `url` tags; out, when non-nil, receives the decoded JSON body.
type RawClient interface {
	Do(ctx context.Context, method, path string, params interface{}, out interface{}) error
}

// Client is the NameBright API client.
type Client interface {
	Account() AccountClient
	Domains() DomainsClient
	Nameservers() NameserversClient
	Purchase() PurchaseClient
	RawClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a namebright.Client.
//
// AccountLogin, AppName and AppSecret are required; the token request uses
// "AccountLogin:AppName" as client_id and AppSecret as client_secret.
//
// Per-request deadlines should be set on the context passed to client
// methods. HTTPTimeout bounds every request regardless of context.
type Config struct {
	AccountLogin string
	AppName      string
	AppSecret    string

	// APIURL overrides the API root (default https://api.namebright.com).
	// nbclient.New trims a trailing slash and adds "https://" when no scheme
	// is present.
	APIURL string

	// HTTPClient replaces the underlying transport, e.g. for tests or proxies.
	HTTPClient *http.Client
	// HTTPTimeout applies when HTTPClient is nil.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response body logging when a Logger is set.
	Debug  bool
	Logger Logger
}

// Validate checks that every credential field is set.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	switch {
	case strings.TrimSpace(c.AccountLogin) == "":
		return ErrAccountLoginRequired
	case strings.TrimSpace(c.AppName) == "":
		return ErrAppNameRequired
	case strings.TrimSpace(c.AppSecret) == "":
		return ErrAppSecretRequired
	}

	return nil
}

// NopLogger discards every message. Components fall back to it when no
// Logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// LoggerOrNop returns logger, or NopLogger when logger is nil.
func LoggerOrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}

	return logger
}
