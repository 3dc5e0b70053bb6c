package helpcenter

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPFetcher abstracts HTTP calls for testability
type HTTPFetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// RealHTTPFetcher wraps http.Client for production use
type RealHTTPFetcher struct {
	client *http.Client
}

// NewRealHTTPFetcher creates a production HTTP fetcher
func NewRealHTTPFetcher(client *http.Client) HTTPFetcher {
	return &RealHTTPFetcher{client: client}
}

func (f *RealHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

// RecordedRequest captures a request the mock fetcher served, so tests can
// assert on the payloads the engine actually sent.
type RecordedRequest struct {
	Method        string
	URL           string
	Body          string
	Authorization string
}

// MockHTTPFetcher simulates HTTP responses for testing, keyed on method+URL.
type MockHTTPFetcher struct {
	responses map[string][]*mockResponse
	errors    map[string]error
	Requests  []RecordedRequest
}

type mockResponse struct {
	statusCode int
	body       string
}

// NewMockHTTPFetcher creates a mock HTTP fetcher
func NewMockHTTPFetcher() *MockHTTPFetcher {
	return &MockHTTPFetcher{
		responses: make(map[string][]*mockResponse),
		errors:    make(map[string]error),
	}
}

func mockKey(method, url string) string {
	return method + " " + url
}

// AddResponse registers a mock response for a method and URL. Registering
// multiple responses for the same key serves them in order, with the last
// one repeating.
func (m *MockHTTPFetcher) AddResponse(method, url string, statusCode int, body string) {
	key := mockKey(method, url)
	m.responses[key] = append(m.responses[key], &mockResponse{statusCode: statusCode, body: body})
}

// AddError registers a mock transport error for a method and URL
func (m *MockHTTPFetcher) AddError(method, url string, err error) {
	m.errors[mockKey(method, url)] = err
}

func (m *MockHTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		_ = req.Body.Close()
		body = string(data)
	}
	m.Requests = append(m.Requests, RecordedRequest{
		Method:        req.Method,
		URL:           req.URL.String(),
		Body:          body,
		Authorization: req.Header.Get("Authorization"),
	})

	key := mockKey(req.Method, req.URL.String())
	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	if queue, ok := m.responses[key]; ok && len(queue) > 0 {
		next := queue[0]
		if len(queue) > 1 {
			m.responses[key] = queue[1:]
		}
		return &http.Response{
			StatusCode: next.statusCode,
			Body:       io.NopCloser(strings.NewReader(next.body)),
			Header:     make(http.Header),
			Request:    req,
		}, nil
	}
	// Unknown endpoints 404 so a missing registration shows up clearly
	return &http.Response{
		StatusCode: 404,
		Body:       io.NopCloser(strings.NewReader(fmt.Sprintf("no mock for %s", key))),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}
