package client_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedCall is one request seen by the test server.
type RecordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

type cannedResponse struct {
	status int
	body   string
}

// RecordingServer answers "METHOD path" routes with canned responses and
// records every call in order. Unknown routes get a 404.
type RecordingServer struct {
	*httptest.Server

	mu        sync.Mutex
	calls     []RecordedCall
	responses map[string]cannedResponse
}

func NewRecordingServer(t *testing.T) *RecordingServer {
	t.Helper()

	rs := &RecordingServer{responses: map[string]cannedResponse{}}
	rs.Server = httptest.NewServer(http.HandlerFunc(rs.handle))
	t.Cleanup(rs.Close)

	return rs
}

func (rs *RecordingServer) On(method, path string, status int, body string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

func (rs *RecordingServer) Calls() []RecordedCall {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return append([]RecordedCall(nil), rs.calls...)
}

func (rs *RecordingServer) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	rs.mu.Lock()
	rs.calls = append(rs.calls, RecordedCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Form:   r.PostForm,
	})
	response, ok := rs.responses[r.Method+" "+r.URL.Path]
	rs.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"Message":"not found"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_, _ = w.Write([]byte(response.body))
}

// MockLogger collects warnings.
type MockLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *MockLogger) Debug(string, map[string]interface{}) {}
func (l *MockLogger) Info(string, map[string]interface{})  {}
func (l *MockLogger) Error(string, map[string]interface{}) {}

func (l *MockLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings = append(l.warnings, msg)
}

func (l *MockLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.warnings...)
}
