package commands

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// ErrInvalidDomainName is returned for a domain argument that cannot be converted to an ASCII name.
var ErrInvalidDomainName = errors.New("invalid domain name")

// normalizeDomainArg turns user input into the ASCII name NameBright expects.
// URLs are reduced to their host, a trailing dot is dropped and IDNs are
// converted to punycode.
func normalizeDomainArg(input string) (string, error) {
	name := strings.TrimSpace(input)

	if strings.Contains(name, "://") {
		if u, err := url.Parse(name); err == nil && u.Hostname() != "" {
			name = u.Hostname()
		}
	}

	name = strings.ToLower(strings.TrimSuffix(name, "."))
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomainName, input)
	}

	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidDomainName, input, err.Error())
	}

	if !strings.Contains(ascii, ".") {
		return "", fmt.Errorf("%w: %q has no TLD", ErrInvalidDomainName, input)
	}

	return ascii, nil
}

// publicSuffix returns the public suffix of a domain, e.g. "co.uk".
func publicSuffix(domain string) string {
	suffix, _ := publicsuffix.PublicSuffix(strings.ToLower(domain))

	return suffix
}
