package testutil

import (
	"context"
	"sync"

	"github.com/dafibh/gigledger/ledger-backend/internal/websocket"
)

// MockBlobStore is a mock implementation of domain.BlobStore
type MockBlobStore struct {
	mu    sync.Mutex
	Blobs map[string][]byte

	GetFn func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn func(ctx context.Context, key string, blob []byte) error

	GetCalls int
	SetCalls int
}

// NewMockBlobStore creates a new MockBlobStore
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Blobs: make(map[string][]byte),
	}
}

// Get returns the stored blob for key
func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	m.GetCalls++
	fn := m.GetFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.Blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

// Set stores blob under key
func (m *MockBlobStore) Set(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	m.SetCalls++
	fn := m.SetFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, key, blob)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Blobs[key] = append([]byte(nil), blob...)
	return nil
}

// Put seeds a blob directly
func (m *MockBlobStore) Put(key string, blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Blobs[key] = blob
}

// Blob returns the stored blob for key, nil when absent
func (m *MockBlobStore) Blob(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Blobs[key]
}

// Calls returns the Get and Set call counts
func (m *MockBlobStore) Calls() (gets, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GetCalls, m.SetCalls
}

// MockEventPublisher captures published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// EventTypes returns the types of all captured events in order
func (m *MockEventPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// Reset clears captured events
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = nil
}
