package rudder

import (
	"context"
	"sync"
)

// Store is the abstract key-value contract the Broadcaster persists
// through. It has no opinion on the storage medium.
type Store interface {
	// Load returns the value for key and whether it was present.
	Load(key string) (string, bool, error)

	// Save durably records the value for key.
	Save(key, value string) error
}

// StoreWatcher is implemented by stores that can observe external changes
// to a key. The channel emits the key's new value when the backing medium
// changes; it is closed when the context is canceled.
type StoreWatcher interface {
	Watch(ctx context.Context, key string) (<-chan string, error)
}

// MemoryStore is an in-process Store. It is the default backing for
// Default() and the natural store for tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load returns the stored value for key, if any.
func (m *MemoryStore) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save records value under key.
func (m *MemoryStore) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
