package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps collections in process memory. Documents are stored as JSON
// so reads see the same number types a remote backend would return.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, collection string) (map[string]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Document, len(m.collections[collection]))
	for key, raw := range m.collections[collection] {
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, wrap("get", collection, key, err)
		}
		out[key] = doc
	}
	return out, nil
}

func (m *Memory) Push(_ context.Context, collection string, doc Document) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", wrap("push", collection, "", err)
	}
	key := newKey()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string][]byte)
	}
	m.collections[collection][key] = raw
	return key, nil
}

func (m *Memory) Update(_ context.Context, collection, key string, fields Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var doc Document
	if raw, ok := m.collections[collection][key]; ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return wrap("update", collection, key, err)
		}
	}
	raw, err := json.Marshal(merge(doc, fields))
	if err != nil {
		return wrap("update", collection, key, err)
	}
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string][]byte)
	}
	m.collections[collection][key] = raw
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][key]; !ok {
		return wrap("delete", collection, key, ErrNotFound)
	}
	delete(m.collections[collection], key)
	return nil
}

// newKey returns a time-ordered key, so keys sort by creation like
// realtime database push ids do.
func newKey() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (m *Memory) Ping(context.Context, string) error { return nil }
