package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/namebright-client/internal/client"
	"github.com/fivetwenty-io/namebright-client/pkg/namebright"
)

const nameserversPath = "/rest/account/domains/example.com/nameservers"

func TestNameserversClient_List(t *testing.T) {
	t.Parallel()

	server := NewRecordingServer(t)
	server.On(http.MethodGet, nameserversPath, http.StatusOK,
		`{"DomainName":"example.com","NameServers":["ns1.example.net","ns2.example.net"]}`)

	nameservers, err := NewTestClient(server.URL, nil).Nameservers().List(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"ns1.example.net", "ns2.example.net"}, nameservers)
}

func TestNameserversClient_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "json string echo", body: `"ns1.example.net"`, expected: "ns1.example.net"},
		{name: "plain text echo", body: "ns1.example.net\n", expected: "ns1.example.net"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewRecordingServer(t)
			server.On(http.MethodPut, nameserversPath+"/ns1.example.net", http.StatusOK, tt.body)

			echoed, err := NewTestClient(server.URL, nil).Nameservers().Add(context.Background(), "example.com", "ns1.example.net")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, echoed)
		})
	}
}

func TestNameserversClient_Delete(t *testing.T) {
	t.Parallel()

	server := NewRecordingServer(t)
	server.On(http.MethodDelete, nameserversPath+"/ns1.example.net", http.StatusOK, ``)
	server.On(http.MethodDelete, nameserversPath, http.StatusOK, ``)

	nameservers := NewTestClient(server.URL, nil).Nameservers()

	require.NoError(t, nameservers.Delete(context.Background(), "example.com", "ns1.example.net"))
	require.NoError(t, nameservers.DeleteAll(context.Background(), "example.com"))

	err := nameservers.Delete(context.Background(), "example.com", "")
	require.ErrorIs(t, err, namebright.ErrNameserverRequired)

	calls := server.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, nameserversPath+"/ns1.example.net", calls[0].Path)
	assert.Equal(t, nameserversPath, calls[1].Path)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNameserversClient_Set(t *testing.T) {
	t.Parallel()

	t.Run("partial failure keeps the rest", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t)
		server.On(http.MethodDelete, nameserversPath, http.StatusOK, ``)
		server.On(http.MethodPut, nameserversPath+"/a", http.StatusOK, `"a"`)
		server.On(http.MethodPut, nameserversPath+"/b", http.StatusBadRequest, `{"Message":"invalid"}`)
		server.On(http.MethodPut, nameserversPath+"/c", http.StatusOK, `"c"`)

		logger := &MockLogger{}

		applied, err := NewTestClient(server.URL, logger).Nameservers().Set(context.Background(), "example.com", []string{"a", "b", "c"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, applied)
		assert.Equal(t, []string{"nameserver not applied"}, logger.Warnings())

		calls := server.Calls()
		require.Len(t, calls, 4)
		assert.Equal(t, http.MethodDelete, calls[0].Method)
		assert.Equal(t, nameserversPath, calls[0].Path)

		for i, ns := range []string{"a", "b", "c"} {
			assert.Equal(t, http.MethodPut, calls[i+1].Method)
			assert.Equal(t, nameserversPath+"/"+ns, calls[i+1].Path)
		}
	})

	t.Run("mismatched echo is dropped", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t)
		server.On(http.MethodDelete, nameserversPath, http.StatusOK, ``)
		server.On(http.MethodPut, nameserversPath+"/a", http.StatusOK, `"a"`)
		server.On(http.MethodPut, nameserversPath+"/b", http.StatusOK, `"something-else"`)

		logger := &MockLogger{}

		applied, err := NewTestClient(server.URL, logger).Nameservers().Set(context.Background(), "example.com", []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, applied)
		assert.Equal(t, []string{"nameserver not confirmed"}, logger.Warnings())
	})

	t.Run("delete failure aborts", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t)
		server.On(http.MethodDelete, nameserversPath, http.StatusForbidden, `locked`)

		_, err := NewTestClient(server.URL, nil).Nameservers().Set(context.Background(), "example.com", []string{"a", "b"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, namebright.StatusCode(err))
		assert.Len(t, server.Calls(), 1)
	})

	t.Run("cancelled context stops additions", func(t *testing.T) {
		t.Parallel()

		server := NewRecordingServer(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewTestClient(server.URL, nil).Nameservers().Set(ctx, "example.com", []string{"a", "b"})
		require.ErrorIs(t, err, context.Canceled)
	})

	invalid := []struct {
		name        string
		nameservers []string
		expected    error
	}{
		{name: "one nameserver", nameservers: []string{"a"}, expected: namebright.ErrInvalidNameserverCount},
		{name: "five nameservers", nameservers: []string{"a", "b", "c", "d", "e"}, expected: namebright.ErrInvalidNameserverCount},
		{name: "no nameservers", nameservers: nil, expected: namebright.ErrInvalidNameserverCount},
		{name: "blank entry", nameservers: []string{"a", " "}, expected: namebright.ErrNameserverRequired},
		{name: "duplicate entry", nameservers: []string{"a", "a"}, expected: namebright.ErrDuplicateNameserver},
		{name: "duplicate differing in case", nameservers: []string{"ns1.example.net", "NS1.example.net."}, expected: namebright.ErrDuplicateNameserver},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := NewRecordingServer(t)

			_, err := NewTestClient(server.URL, nil).Nameservers().Set(context.Background(), "example.com", tt.nameservers)
			require.ErrorIs(t, err, tt.expected)
			require.ErrorIs(t, err, namebright.ErrValidation)
			assert.Empty(t, server.Calls())
		})
	}
}
