package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// NameserversClient implements namebright.NameserversClient.
type NameserversClient struct {
	httpClient *http.Client
	logger     namebright.Logger
}

// NewNameserversClient creates a new nameservers client.
func NewNameserversClient(httpClient *http.Client, logger namebright.Logger) *NameserversClient {
	return &NameserversClient{
		httpClient: httpClient,
		logger:     namebright.LoggerOrNop(logger),
	}
}

// List implements namebright.NameserversClient.List.
func (c *NameserversClient) List(ctx context.Context, domain string) ([]string, error) {
	if strings.TrimSpace(domain) == "" {
		return nil, namebright.ErrDomainNameRequired
	}

	c.logger.Debug("getNameservers", map[string]interface{}{
		"domain": domain,
	})

	resp, err := c.httpClient.Get(ctx, nameserversPath(domain), nil)
	if err != nil {
		return nil, err
	}

	var listing namebright.NameserversResponse

	err = json.Unmarshal(resp.Body, &listing)
	if err != nil {
		return nil, fmt.Errorf("parsing nameservers: %w", err)
	}

	return listing.NameServers, nil
}

// Add implements namebright.NameserversClient.Add. It returns whatever the
// API echoed back, which equals nameserver when the change was applied.
func (c *NameserversClient) Add(ctx context.Context, domain, nameserver string) (string, error) {
	err := validateNameserverArgs(domain, nameserver)
	if err != nil {
		return "", err
	}

	c.logger.Debug("setNameserver", map[string]interface{}{
		"domain":     domain,
		"nameserver": nameserver,
	})

	resp, err := c.httpClient.Put(ctx, nameserverPath(domain, nameserver), nil)
	if err != nil {
		return "", err
	}

	return decodeEcho(resp.Body), nil
}

// Delete implements namebright.NameserversClient.Delete.
func (c *NameserversClient) Delete(ctx context.Context, domain, nameserver string) error {
	err := validateNameserverArgs(domain, nameserver)
	if err != nil {
		return err
	}

	c.logger.Debug("deleteNameserver", map[string]interface{}{
		"domain":     domain,
		"nameserver": nameserver,
	})

	_, err = c.httpClient.Delete(ctx, nameserverPath(domain, nameserver))

	return err
}

// DeleteAll implements namebright.NameserversClient.DeleteAll.
func (c *NameserversClient) DeleteAll(ctx context.Context, domain string) error {
	if strings.TrimSpace(domain) == "" {
		return namebright.ErrDomainNameRequired
	}

	c.logger.Debug("deleteNameservers", map[string]interface{}{
		"domain": domain,
	})

	_, err := c.httpClient.Delete(ctx, nameserversPath(domain))

	return err
}

// Set implements namebright.NameserversClient.Set.
//
// The existing nameservers are deleted first, then each requested one is
// added in order, one call at a time. A failed or non-echoed addition is
// logged and left out of the result; the remaining additions still run. Only
// a failed delete, a cancelled context, or invalid input return an error.
func (c *NameserversClient) Set(ctx context.Context, domain string, nameservers []string) ([]string, error) {
	if len(nameservers) < constants.MinNameservers || len(nameservers) > constants.MaxNameservers {
		return nil, fmt.Errorf("%w: got %d", namebright.ErrInvalidNameserverCount, len(nameservers))
	}

	seen := make(map[string]bool, len(nameservers))

	for _, nameserver := range nameservers {
		err := validateNameserverArgs(domain, nameserver)
		if err != nil {
			return nil, err
		}

		key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(nameserver), "."))
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", namebright.ErrDuplicateNameserver, nameserver)
		}

		seen[key] = true
	}

	err := c.DeleteAll(ctx, domain)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(nameservers))

	for _, nameserver := range nameservers {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return applied, ctxErr
		}

		echoed, addErr := c.Add(ctx, domain, nameserver)
		if addErr != nil {
			c.logger.Warn("nameserver not applied", map[string]interface{}{
				"domain":     domain,
				"nameserver": nameserver,
				"error":      addErr.Error(),
			})

			continue
		}

		if echoed != nameserver {
			c.logger.Warn("nameserver not confirmed", map[string]interface{}{
				"domain":     domain,
				"nameserver": nameserver,
				"echoed":     echoed,
			})

			continue
		}

		applied = append(applied, nameserver)
	}

	return applied, nil
}

func validateNameserverArgs(domain, nameserver string) error {
	if strings.TrimSpace(domain) == "" {
		return namebright.ErrDomainNameRequired
	}

	if strings.TrimSpace(nameserver) == "" {
		return namebright.ErrNameserverRequired
	}

	return nil
}

// decodeEcho reads the nameserver string returned by PUT. The API answers
// with a JSON string; anything else is compared as plain text.
func decodeEcho(body []byte) string {
	var echoed string

	err := json.Unmarshal(body, &echoed)
	if err == nil {
		return echoed
	}

	return strings.TrimSpace(string(body))
}

func nameserversPath(domain string) string {
	return domainPath(domain) + "/nameservers"
}

func nameserverPath(domain, nameserver string) string {
	return nameserversPath(domain) + "/" + url.PathEscape(nameserver)
}
