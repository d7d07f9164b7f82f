package auth

import (
	"os"
	"strings"
	"sync"
)

// CredentialStore maps API keys to user ids.
type CredentialStore interface {
	// UserForKey returns the user id bound to the key, or "" if unknown.
	UserForKey(key string) string
	// Put binds a key to a user id, replacing any earlier binding.
	Put(key, userID string)
	// Delete removes one key. Reports whether it existed.
	Delete(key string) bool
	// DeleteByUser removes every key bound to the user. Returns how many
	// were removed.
	DeleteByUser(userID string) int
	// KeysForUser returns the user's keys in insertion-independent order.
	KeysForUser(userID string) []string
}

// MemoryStore is an in-process CredentialStore. Keys registered here do
// not survive a restart; the backend re-seeds them via the environment.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]string // api key -> user id
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]string)}
}

func (m *MemoryStore) UserForKey(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.keys[key]
}

func (m *MemoryStore) Put(key, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = userID
}

func (m *MemoryStore) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	delete(m.keys, key)
	return ok
}

func (m *MemoryStore) DeleteByUser(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, u := range m.keys {
		if u == userID {
			delete(m.keys, k)
			n++
		}
	}
	return n
}

func (m *MemoryStore) KeysForUser(userID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for k, u := range m.keys {
		if u == userID {
			out = append(out, k)
		}
	}
	return out
}

// SeedFromEnv loads per-user keys from variables named prefix<user_id>.
// Environment variable names cannot carry hyphens, so underscores in the
// suffix are mapped back to hyphens to recover the user id.
func (m *MemoryStore) SeedFromEnv(environ []string, prefix string) int {
	n := 0
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		userID := strings.ReplaceAll(strings.TrimPrefix(name, prefix), "_", "-")
		if userID == "" {
			continue
		}
		m.Put(value, userID)
		n++
	}
	return n
}

// SeedFromOSEnv is SeedFromEnv over the process environment.
func (m *MemoryStore) SeedFromOSEnv(prefix string) int {
	return m.SeedFromEnv(os.Environ(), prefix)
}
