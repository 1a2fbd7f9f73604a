package storage

import (
	"context"
	"sync"

	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
)

// MemoryBlobStore keeps blobs in process memory. Contents are lost on restart.
type MemoryBlobStore struct {
	blobs map[string][]byte
	mu    sync.RWMutex
}

var _ domain.BlobStore = (*MemoryBlobStore)(nil)

// NewMemoryBlobStore creates an empty in-memory store
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key
func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

// Set stores a copy of blob under key
func (s *MemoryBlobStore) Set(ctx context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}
