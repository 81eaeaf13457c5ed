package namebright

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Every error returned by the client that is not a transport or
// remote failure wraps exactly one of these.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
)

// Configuration errors.
var (
	ErrConfigRequired       = fmt.Errorf("%w: config is required", ErrConfiguration)
	ErrAccountLoginRequired = fmt.Errorf("%w: account login is required", ErrConfiguration)
	ErrAppNameRequired      = fmt.Errorf("%w: application name is required", ErrConfiguration)
	ErrAppSecretRequired    = fmt.Errorf("%w: application secret is required", ErrConfiguration)
	ErrInvalidAPIURL        = fmt.Errorf("%w: invalid API URL", ErrConfiguration)
)

// Validation errors.
var (
	ErrInvalidYears           = fmt.Errorf("%w: invalid years: min 1 / max 10 required", ErrValidation)
	ErrInvalidNameserverCount = fmt.Errorf("%w: invalid nameservers: min 2 / max 4 required", ErrValidation)
	ErrDomainNameRequired     = fmt.Errorf("%w: domain name is required", ErrValidation)
	ErrNameserverRequired     = fmt.Errorf("%w: nameserver is required", ErrValidation)
	ErrDuplicateNameserver    = fmt.Errorf("%w: duplicate nameserver", ErrValidation)
	ErrMethodRequired         = fmt.Errorf("%w: HTTP method is required", ErrValidation)
)

// Authentication errors.
var (
	ErrNoAccessToken = fmt.Errorf("%w: unable to obtain token", ErrAuthentication)
)

// ErrNoMoreItems is returned by DomainIterator.Next once the sequence is exhausted.
var ErrNoMoreItems = errors.New("no more items")

// ResponseError is returned for any non-2xx response. The body is kept
// verbatim; the client does not interpret NameBright error payloads.
type ResponseError struct {
	Method     string `json:"method"      yaml:"method"`
	Path       string `json:"path"        yaml:"path"`
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Body       []byte `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))

	body := strings.TrimSpace(string(e.Body))
	if body != "" {
		msg += ": " + body
	}

	return msg
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

func hasStatus(err error, status int) bool {
	return StatusCode(err) == status
}
