package client

import (
	internalhttp "github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// NewTestClient creates a client for baseURL that sends no Authorization
// header.
func NewTestClient(baseURL string, logger namebright.Logger) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil, internalhttp.WithLogger(logger))

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     namebright.LoggerOrNop(logger),
	}

	client.initializeResourceClients()

	return client
}
