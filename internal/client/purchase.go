package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

const renewPath = "/rest/purchase/renew"

// PurchaseClient implements namebright.PurchaseClient.
type PurchaseClient struct {
	httpClient *http.Client
	logger     namebright.Logger
}

// NewPurchaseClient creates a new purchase client.
func NewPurchaseClient(httpClient *http.Client, logger namebright.Logger) *PurchaseClient {
	return &PurchaseClient{
		httpClient: httpClient,
		logger:     namebright.LoggerOrNop(logger),
	}
}

// Renew implements namebright.PurchaseClient.Renew. years must be within
// 1..10; the check happens before any request.
func (c *PurchaseClient) Renew(ctx context.Context, domain string, years int) (*namebright.RenewResponse, error) {
	if years < constants.MinRenewYears || years > constants.MaxRenewYears {
		return nil, fmt.Errorf("%w: got %d", namebright.ErrInvalidYears, years)
	}

	if strings.TrimSpace(domain) == "" {
		return nil, namebright.ErrDomainNameRequired
	}

	c.logger.Debug("renewDomain", map[string]interface{}{
		"domain": domain,
		"years":  years,
	})

	resp, err := c.httpClient.Post(ctx, renewPath, &namebright.RenewRequest{
		DomainName: domain,
		Years:      years,
	})
	if err != nil {
		return nil, err
	}

	var order namebright.RenewResponse

	err = json.Unmarshal(resp.Body, &order)
	if err != nil {
		return nil, fmt.Errorf("parsing renew response: %w", err)
	}

	return &order, nil
}
