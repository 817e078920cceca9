package recognize

import (
	"context"
	"sync"
)

// MockRecognizer is a test implementation of the Recognizer interface.
type MockRecognizer struct {
	mu       sync.Mutex
	result   *Result
	err      error
	requests []Request
	block    chan struct{}
}

// NewMockRecognizer creates a new MockRecognizer instance.
func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{}
}

// SetResult sets the result returned by Recognize.
func (m *MockRecognizer) SetResult(r *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.result = r
}

// SetError sets the error returned by Recognize.
func (m *MockRecognizer) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes Recognize wait until Release is called, letting tests
// hold a recognition in flight.
func (m *MockRecognizer) Block() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.block = make(chan struct{})
}

// Release unblocks a pending Recognize call.
func (m *MockRecognizer) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.block != nil {
		close(m.block)
		m.block = nil
	}
}

// Requests returns a copy of all requests seen so far.
func (m *MockRecognizer) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Recognize records the request and returns the configured result.
func (m *MockRecognizer) Recognize(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	block := m.block
	result := m.result
	err := m.err
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	if result == nil {
		return &Result{}, nil
	}
	return result, nil
}
