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

const domainsPath = "/rest/account/domains"

// DomainsClient implements namebright.DomainsClient.
type DomainsClient struct {
	httpClient *http.Client
	logger     namebright.Logger
}

// NewDomainsClient creates a new domains client.
func NewDomainsClient(httpClient *http.Client, logger namebright.Logger) *DomainsClient {
	return &DomainsClient{
		httpClient: httpClient,
		logger:     namebright.LoggerOrNop(logger),
	}
}

// List implements namebright.DomainsClient.List. A page below 1 requests the
// first page and a non-positive perPage uses the default of 20; the upper
// bound of perPage is enforced by the server.
func (c *DomainsClient) List(ctx context.Context, page, perPage int) (*namebright.DomainsPage, error) {
	if page < constants.FirstPage {
		page = constants.FirstPage
	}

	if perPage <= 0 {
		perPage = constants.DefaultPerPage
	}

	c.logger.Debug("getDomains", map[string]interface{}{
		"page":     page,
		"per_page": perPage,
	})

	resp, err := c.httpClient.Get(ctx, domainsPath, &namebright.ListDomainsParams{
		Page:           page,
		DomainsPerPage: perPage,
	})
	if err != nil {
		return nil, err
	}

	var domainsPage namebright.DomainsPage

	err = json.Unmarshal(resp.Body, &domainsPage)
	if err != nil {
		return nil, fmt.Errorf("parsing domains page: %w", err)
	}

	return &domainsPage, nil
}

// Get implements namebright.DomainsClient.Get.
func (c *DomainsClient) Get(ctx context.Context, domain string) (*namebright.Domain, error) {
	if strings.TrimSpace(domain) == "" {
		return nil, namebright.ErrDomainNameRequired
	}

	c.logger.Debug("getDomain", map[string]interface{}{
		"domain": domain,
	})

	resp, err := c.httpClient.Get(ctx, domainPath(domain), nil)
	if err != nil {
		return nil, err
	}

	var record namebright.Domain

	err = json.Unmarshal(resp.Body, &record)
	if err != nil {
		return nil, fmt.Errorf("parsing domain: %w", err)
	}

	return &record, nil
}

// Iterate implements namebright.DomainsClient.Iterate.
func (c *DomainsClient) Iterate(ctx context.Context, perPage int) *namebright.DomainIterator {
	return namebright.NewDomainIterator(ctx, c, perPage)
}

func domainPath(domain string) string {
	return domainsPath + "/" + url.PathEscape(domain)
}
