package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nbhttp "github.com/fivetwenty-io/namebright-client/internal/http"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

// Test static errors.
var (
	ErrTestTokenFailure = errors.New("token failure")
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

type listParams struct {
	Page           int `url:"page"`
	DomainsPerPage int `url:"domainsPerPage"`
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("GET sends params as query string", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/rest/account/domains", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "2", request.URL.Query().Get("page"))
			assert.Equal(t, "50", request.URL.Query().Get("domainsPerPage"))
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			_, _ = writer.Write([]byte(`{"ResultsTotal":0}`))
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, &MockTokenManager{token: "test-token"})

		resp, err := client.Do(context.Background(), &nbhttp.Request{
			Method: "get",
			Path:   "/rest/account/domains",
			Params: &listParams{Page: 2, DomainsPerPage: 50},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ResultsTotal":0}`, string(resp.Body))
	})

	t.Run("POST sends params as form body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
			assert.Empty(t, request.URL.RawQuery)

			err := request.ParseForm()
			assert.NoError(t, err)
			assert.Equal(t, "example.com", request.PostForm.Get("DomainName"))
			assert.Equal(t, "2", request.PostForm.Get("Years"))

			_, _ = writer.Write([]byte(`{"OrderId":1}`))
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, &MockTokenManager{token: "test-token"})

		_, err := client.Post(context.Background(), "/rest/purchase/renew", map[string]interface{}{
			"DomainName": "example.com",
			"Years":      2,
		})
		require.NoError(t, err)
	})

	t.Run("path without leading slash", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/rest/account", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL+"/", nil)

		_, err := client.Get(context.Background(), "rest/account", nil)
		require.NoError(t, err)
	})

	t.Run("non-2xx returns response error with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"Message":"domain not found"}`))
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, &MockTokenManager{token: "test-token"})

		resp, err := client.Get(context.Background(), "/rest/account/domains/missing.com", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.True(t, namebright.IsNotFound(err))

		var respErr *namebright.ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.MethodGet, respErr.Method)
		assert.Equal(t, "/rest/account/domains/missing.com", respErr.Path)
		assert.Contains(t, string(respErr.Body), "domain not found")
	})

	t.Run("token failure is returned before sending", func(t *testing.T) {
		t.Parallel()

		called := false
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			called = true
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, &MockTokenManager{err: ErrTestTokenFailure})

		_, err := client.Get(context.Background(), "/rest/account", nil)
		require.ErrorIs(t, err, ErrTestTokenFailure)
		assert.False(t, called)
	})

	t.Run("missing method", func(t *testing.T) {
		t.Parallel()

		client := nbhttp.NewClient("https://api.example.com", nil)

		_, err := client.Do(context.Background(), &nbhttp.Request{Path: "/rest/account"})
		require.ErrorIs(t, err, namebright.ErrValidation)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Get(ctx, "/rest/account", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("custom headers and user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "my-agent/1.0", request.Header.Get("User-Agent"))
			assert.Equal(t, "yes", request.Header.Get("X-Test"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := nbhttp.NewClient(server.URL, nil, nbhttp.WithUserAgent("my-agent/1.0"))

		resp, err := client.Do(context.Background(), &nbhttp.Request{
			Method:  http.MethodDelete,
			Path:    "/rest/account/domains/example.com/nameservers",
			Headers: map[string]string{"X-Test": "yes"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestClient_NoRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		calls++

		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := nbhttp.NewClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/rest/account", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, namebright.StatusCode(err))
	assert.Equal(t, 1, calls)
}

func TestClient_DoJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/empty" {
			writer.WriteHeader(http.StatusOK)

			return
		}

		_, _ = writer.Write([]byte(`{"AccountBalance":12.5}`))
	}))
	defer server.Close()

	client := nbhttp.NewClient(server.URL, nil)

	var account namebright.Account

	err := client.DoJSON(context.Background(), &nbhttp.Request{Method: http.MethodGet, Path: "/rest/account"}, &account)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, account.AccountBalance, 0.0001)

	out := map[string]interface{}{"kept": true}
	err = client.DoJSON(context.Background(), &nbhttp.Request{Method: http.MethodGet, Path: "/empty"}, &out)
	require.NoError(t, err)
	assert.Equal(t, true, out["kept"])
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"AccountBalance":1}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := nbhttp.NewClient(server.URL, nil, nbhttp.WithLogger(logger), nbhttp.WithDebug(true))

	_, err := client.Get(context.Background(), "/rest/account", url.Values{"a": {"b"}})
	require.NoError(t, err)

	var requestIDs []interface{}

	for _, entry := range logger.logs {
		fields, ok := entry["fields"].(map[string]interface{})
		if !ok {
			continue
		}

		if id, found := fields["request_id"]; found {
			requestIDs = append(requestIDs, id)
		}

		if entry["msg"] == "HTTP <" {
			assert.JSONEq(t, `{"AccountBalance":1}`, fields["body"].(string))
		}
	}

	require.Len(t, requestIDs, 2)
	assert.Equal(t, requestIDs[0], requestIDs[1])
}

func TestEncodeParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   interface{}
		expected string
	}{
		{name: "nil", params: nil, expected: ""},
		{name: "url values", params: url.Values{"b": {"2"}, "a": {"1"}}, expected: "a=1&b=2"},
		{name: "string map", params: map[string]string{"page": "3"}, expected: "page=3"},
		{
			name:     "interface map drops nil and repeats slices",
			params:   map[string]interface{}{"ns": []string{"ns1", "ns2"}, "skip": nil, "years": 2},
			expected: "ns=ns1&ns=ns2&years=2",
		},
		{name: "tagged struct", params: &listParams{Page: 1, DomainsPerPage: 20}, expected: "domainsPerPage=20&page=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values, err := nbhttp.EncodeParams(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values.Encode())
		})
	}

	_, err := nbhttp.EncodeParams(42)
	require.Error(t, err)
}
