package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/namebright-client/internal/auth"
	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// Client sends authenticated requests to the NameBright API.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	logger       namebright.Logger
	debug        bool
	userAgent    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger namebright.Logger) Option {
	return func(c *Client) {
		c.logger = namebright.LoggerOrNop(logger)
	}
}

// WithDebug includes parameters and response bodies in the request trace.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryableClient shares an existing transport, e.g. with the token manager.
func WithRetryableClient(httpClient *retryablehttp.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Request describes one API call. Params are sent as the query string for
// GET and as a form-encoded body for every other method.
type Request struct {
	Method  string
	Path    string
	Params  interface{}
	Headers map[string]string
}

// Response is the raw result of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NewClient creates a client for baseURL. A nil tokenManager sends requests
// without an Authorization header.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		logger:       namebright.NopLogger{},
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = NewRetryableClient(nil, 0, client.logger)
	}

	return client
}

// NewRetryableClient wraps httpClient in a retryablehttp client that never
// retries and hands every response back to the caller unchanged. A nil
// httpClient gets a pooled client with the given timeout.
func NewRetryableClient(httpClient *http.Client, timeout time.Duration, logger namebright.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = neverRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if httpClient != nil {
		client.HTTPClient = httpClient
	} else {
		if timeout <= 0 {
			timeout = constants.DefaultHTTPTimeout
		}

		client.HTTPClient.Timeout = timeout
	}

	if logger != nil {
		client.Logger = &leveledLogger{logger: logger}
	} else {
		client.Logger = nil
	}

	return client
}

func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, ctx.Err()
}

// Do sends req. On a non-2xx status both the response and a
// *namebright.ResponseError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Method == "" {
		return nil, namebright.ErrMethodRequired
	}

	method := strings.ToUpper(req.Method)

	params, err := EncodeParams(req.Params)
	if err != nil {
		return nil, err
	}

	fullURL := c.baseURL + ensureLeadingSlash(req.Path)

	var body interface{}

	if method == http.MethodGet {
		if len(params) > 0 {
			fullURL += querySeparator(fullURL) + params.Encode()
		}
	} else {
		body = []byte(params.Encode())
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if method != http.MethodGet {
		httpReq.Header.Set("Content-Type", constants.ContentTypeForm)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, tokenErr := c.tokenManager.GetToken(ctx)
		if tokenErr != nil {
			return nil, tokenErr
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	c.logRequest(requestID, method, req.Path, params.Encode())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil && httpResp.Body != nil {
			_ = httpResp.Body.Close()
		}

		c.logger.Error("HTTP request failed", map[string]interface{}{
			"request_id": requestID,
			"method":     method,
			"path":       req.Path,
			"error":      err.Error(),
		})

		return nil, err
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, constants.MaxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	c.logResponse(requestID, method, req.Path, resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, &namebright.ResponseError{
			Method:     method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	return resp, nil
}

// DoJSON sends req and decodes a JSON body into out. An empty body leaves
// out untouched.
func (c *Client) DoJSON(ctx context.Context, req *Request, out interface{}) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	err = json.Unmarshal(resp.Body, out)
	if err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", strings.ToUpper(req.Method), req.Path, err)
	}

	return nil
}

func (c *Client) logRequest(requestID, method, path, encodedParams string) {
	fields := map[string]interface{}{
		"request_id": requestID,
		"method":     method,
		"path":       path,
	}

	if c.debug && encodedParams != "" {
		fields["params"] = encodedParams
	}

	c.logger.Debug("HTTP >", fields)
}

func (c *Client) logResponse(requestID, method, path string, resp *Response) {
	fields := map[string]interface{}{
		"request_id":  requestID,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
	}

	if c.debug {
		fields["body"] = string(resp.Body)
	}

	c.logger.Debug("HTTP <", fields)
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	return "/" + path
}

func querySeparator(rawURL string) string {
	if strings.Contains(rawURL, "?") {
		return "&"
	}

	return "?"
}

// Get performs a GET request with params as the query string.
func (c *Client) Get(ctx context.Context, path string, params interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Params: params})
}

// Post performs a POST request with params as a form body.
func (c *Client) Post(ctx context.Context, path string, params interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Params: params})
}

// Put performs a PUT request with params as a form body.
func (c *Client) Put(ctx context.Context, path string, params interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Params: params})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
