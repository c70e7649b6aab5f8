package repository

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
	}
}

func (store *MemoryStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (store *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	store.docs[key] = stored
	return nil
}

func (store *MemoryStore) Remove(ctx context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.docs, key)
	return nil
}

func (store *MemoryStore) Endpoint() string {
	return "memory"
}

func (store *MemoryStore) Close() error {
	return nil
}
