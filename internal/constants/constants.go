package constants

import "time"

// API defaults.
const (
	// DefaultAPIURL is the NameBright API root used when none is configured.
	DefaultAPIURL = "https://api.namebright.com"

	// TokenPath is the client-credentials token endpoint.
	TokenPath = "/auth/token"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "namebright-client-go"
)

// Token lifecycle.
const (
	// TokenExpirySkew renews a token this long before it actually expires.
	TokenExpirySkew = 60 * time.Second

	// DefaultTokenLifetimeSeconds applies when the token response omits expires_in.
	DefaultTokenLifetimeSeconds = 3600

	// TokenSingleFlightKey is the singleflight key shared by concurrent refreshes.
	TokenSingleFlightKey = "access-token"
)

// Pagination.
const (
	// DefaultPerPage is the page size used by the domain listing and iterator.
	DefaultPerPage = 20

	// FirstPage is the first page number accepted by the listing endpoint.
	FirstPage = 1
)

// Validation bounds.
const (
	// MinRenewYears is the minimum renewal period.
	MinRenewYears = 1

	// MaxRenewYears is the maximum renewal period.
	MaxRenewYears = 10

	// MinNameservers is the minimum size of a nameserver set.
	MinNameservers = 2

	// MaxNameservers is the maximum size of a nameserver set.
	MaxNameservers = 4
)

// HTTP.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// MaxResponseBodyBytes caps how much of a response body is read.
	MaxResponseBodyBytes = 10 << 20

	// ContentTypeForm is used for every non-GET request body.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeJSON is the accepted response type.
	ContentTypeJSON = "application/json"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// CLI.
const (
	// ConfigDirName is the directory under $HOME holding the CLI config.
	ConfigDirName = ".namebright"

	// ConfigFileName is the CLI config file name without extension.
	ConfigFileName = "config"

	// EnvPrefix prefixes environment variables read by the CLI.
	EnvPrefix = "NAMEBRIGHT"

	// MinimumArgumentCount is the argument count for KEY VALUE style commands.
	MinimumArgumentCount = 2

	// JSONIndent is the indentation used for JSON output.
	JSONIndent = "  "
)
