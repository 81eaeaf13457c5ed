package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/namebright-client/internal/constants"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// Static errors for err113 compliance.
var (
	ErrTokenURLRequired   = errors.New("token URL is required")
	ErrHTTPClientRequired = errors.New("HTTP client is required")
)

// ClientCredentialsConfig configures a ClientCredentialsManager.
type ClientCredentialsConfig struct {
	TokenURL     string
	AccountLogin string
	AppName      string
	AppSecret    string
	UserAgent    string

	// HTTPClient sends the token request. It must not retry.
	HTTPClient *retryablehttp.Client
	Logger     namebright.Logger

	// Now and Skew default to time.Now and constants.TokenExpirySkew.
	Now  func() time.Time
	Skew time.Duration
}

// ClientCredentialsManager obtains tokens with the client_credentials grant
// and caches them in memory. Concurrent callers that find no usable token
// share one token request.
type ClientCredentialsManager struct {
	config *ClientCredentialsConfig
	store  *TokenStore
	group  singleflight.Group
	logger namebright.Logger
	now    func() time.Time
	skew   time.Duration
}

type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   *float64 `json:"expires_in"`
}

// NewClientCredentialsManager creates a token manager for the given account
// and application.
func NewClientCredentialsManager(config *ClientCredentialsConfig) (*ClientCredentialsManager, error) {
	if config.TokenURL == "" {
		return nil, ErrTokenURLRequired
	}

	if config.HTTPClient == nil {
		return nil, ErrHTTPClientRequired
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	skew := config.Skew
	if skew <= 0 {
		skew = constants.TokenExpirySkew
	}

	return &ClientCredentialsManager{
		config: config,
		store:  NewTokenStore(),
		logger: namebright.LoggerOrNop(config.Logger),
		now:    now,
		skew:   skew,
	}, nil
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *ClientCredentialsManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.ValidAt(m.now(), m.skew) {
		return token.AccessToken, nil
	}

	return m.refresh(ctx, false)
}

// RefreshToken forces a token request, joining one already in flight.
func (m *ClientCredentialsManager) RefreshToken(ctx context.Context) error {
	_, err := m.refresh(ctx, true)

	return err
}

// SetToken manually sets the access token.
func (m *ClientCredentialsManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Token returns a copy of the cached token, or nil.
func (m *ClientCredentialsManager) Token() *Token {
	token := m.store.Get()
	if token == nil {
		return nil
	}

	clone := *token

	return &clone
}

// refresh runs fetchToken under the single-flight group. The in-flight entry
// is dropped as soon as the request finishes, successfully or not, so the
// next caller starts over.
func (m *ClientCredentialsManager) refresh(ctx context.Context, force bool) (string, error) {
	result, err, shared := m.group.Do(constants.TokenSingleFlightKey, func() (interface{}, error) {
		// A refresh that finished between our expiry check and joining the
		// group already left a usable token behind.
		if !force {
			current := m.store.Get()
			if current.ValidAt(m.now(), m.skew) {
				return current.AccessToken, nil
			}
		}

		token, fetchErr := m.fetchToken(ctx)
		if fetchErr != nil {
			return "", fetchErr
		}

		return token.AccessToken, nil
	})
	if err != nil {
		m.logger.Warn("token request failed", map[string]interface{}{
			"error":  err.Error(),
			"shared": shared,
		})

		return "", err
	}

	accessToken, _ := result.(string)

	return accessToken, nil
}

// fetchToken performs POST /auth/token.
func (m *ClientCredentialsManager) fetchToken(ctx context.Context) (*Token, error) {
	m.logger.Debug("fetchToken", map[string]interface{}{
		"token_url": m.config.TokenURL,
	})

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.config.AccountLogin+":"+m.config.AppName)
	form.Set("client_secret", m.config.AppSecret)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", constants.ContentTypeForm)
	req.Header.Set("Accept", constants.ContentTypeJSON)

	if m.config.UserAgent != "" {
		req.Header.Set("User-Agent", m.config.UserAgent)
	}

	resp, err := m.config.HTTPClient.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &namebright.ResponseError{
			Method:     http.MethodPost,
			Path:       constants.TokenPath,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var decoded tokenResponse

	err = json.Unmarshal(body, &decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding token response: %s", namebright.ErrNoAccessToken, err.Error())
	}

	if decoded.AccessToken == "" {
		return nil, namebright.ErrNoAccessToken
	}

	// expires_in may be fractional.
	lifetime := float64(constants.DefaultTokenLifetimeSeconds)
	if decoded.ExpiresIn != nil {
		lifetime = *decoded.ExpiresIn
	}

	expiresIn := int(lifetime)

	token := &Token{
		AccessToken: decoded.AccessToken,
		TokenType:   decoded.TokenType,
		ExpiresIn:   expiresIn,
		ExpiresAt:   m.now().Add(time.Duration(lifetime * float64(time.Second))),
	}

	m.store.Set(token)

	m.logger.Debug("token acquired", map[string]interface{}{
		"expires_in": expiresIn,
	})

	return token, nil
}
