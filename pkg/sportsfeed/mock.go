package sportsfeed

import (
	"context"
	"sync"

	"github.com/akehoe/bracketlab/internal/models"
)

// MockClient is a mock result provider for testing
type MockClient struct {
	mu      sync.Mutex
	results []models.GameResult
	err     error
	calls   int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithResults sets the results to return
func WithResults(results []models.GameResult) MockOption {
	return func(m *MockClient) {
		m.results = results
	}
}

// WithFetchError sets an error to return from FetchResults
func WithFetchError(err error) MockOption {
	return func(m *MockClient) {
		m.err = err
	}
}

// NewMockClient creates a new mock provider
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name identifies the provider
func (m *MockClient) Name() string {
	return "mock"
}

// FetchResults returns the configured results or error
func (m *MockClient) FetchResults(ctx context.Context) ([]models.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.GameResult, len(m.results))
	copy(out, m.results)
	return out, nil
}

// SetResults replaces the configured results
func (m *MockClient) SetResults(results []models.GameResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
}

// SetError replaces the configured error
func (m *MockClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times FetchResults has been invoked
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ Client = (*MockClient)(nil)
var _ Client = (*ESPNClient)(nil)
var _ Client = (*NCAAClient)(nil)
