package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// AccountClient implements namebright.AccountClient.
type AccountClient struct {
	httpClient *http.Client
	logger     namebright.Logger
}

// NewAccountClient creates a new account client.
func NewAccountClient(httpClient *http.Client, logger namebright.Logger) *AccountClient {
	return &AccountClient{
		httpClient: httpClient,
		logger:     namebright.LoggerOrNop(logger),
	}
}

// Get implements namebright.AccountClient.Get.
func (c *AccountClient) Get(ctx context.Context) (*namebright.Account, error) {
	c.logger.Debug("getAccount", nil)

	resp, err := c.httpClient.Get(ctx, "/rest/account", nil)
	if err != nil {
		return nil, err
	}

	var account namebright.Account

	err = json.Unmarshal(resp.Body, &account)
	if err != nil {
		return nil, fmt.Errorf("parsing account: %w", err)
	}

	return &account, nil
}
