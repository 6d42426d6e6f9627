// Package recent remembers the last few event formats staff picked, outside
// any single draft's lifecycle. The storage backend is a small injected
// key-value port so the wizard core never touches a concrete store directly.
package recent

import "sync"

// Limit is the number of distinct formats kept, most recent first.
const Limit = 3

// Cache is the client-local key-value slot holding the ordered format list.
type Cache interface {
	Load() ([]string, error)
	Store(formats []string) error
}

// Push records a newly selected format: it moves to the front, duplicates are
// collapsed, and the list is trimmed to the limit. The updated list is
// returned for immediate display.
func Push(c Cache, format string) ([]string, error) {
	if format == "" {
		current, err := c.Load()
		return current, err
	}

	current, err := c.Load()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, Limit)
	out = append(out, format)
	for _, f := range current {
		if f == format {
			continue
		}
		out = append(out, f)
		if len(out) == Limit {
			break
		}
	}

	if err := c.Store(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Memory is an in-process Cache, used by tests and as the fallback when no
// persistent slot is configured.
type Memory struct {
	mu      sync.Mutex
	formats []string
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a copy of the stored list.
func (m *Memory) Load() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.formats...), nil
}

// Store replaces the stored list.
func (m *Memory) Store(formats []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formats = append([]string(nil), formats...)
	return nil
}
