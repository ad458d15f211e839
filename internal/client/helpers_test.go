package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/replyify-client/pkg/replyify"
)

// recordedRequest is what the fake API saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
}

// fakeAPI serves canned JSON bodies keyed by "METHOD path" and records calls.
type fakeAPI struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string][]string
	requests  []recordedRequest
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{t: t, responses: make(map[string][]string)}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	return api, server
}

// on queues body as the next response for method and path. An empty body
// responds with 204.
func (f *fakeAPI) on(method, path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := method + " " + path
	f.responses[key] = append(f.responses[key], body)
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	assert.NoError(f.t, err)

	form, err := url.ParseQuery(string(body))
	assert.NoError(f.t, err)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Form:   form,
	})

	key := r.Method + " " + r.URL.Path
	queue := f.responses[key]

	var response string

	found := len(queue) > 0
	if found {
		response = queue[0]
		f.responses[key] = queue[1:]
	}
	f.mu.Unlock()

	switch {
	case !found:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	case response == "":
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}
}

// NewTestClient creates a client talking to baseURL with a test credential.
func NewTestClient(baseURL string) *Client {
	config := replyify.NewConfig()
	config.APIBase = baseURL
	config.AccessToken = "test-token"

	return New(config, nil)
}
