package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skein/internal/util"
)

// Entry is one collapsed failure.
type Entry struct {
	Fingerprint string    `json:"fingerprint"`
	Type        string    `json:"type"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Description string    `json:"description"`
	Count       int64     `json:"count"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
}

// Store persists entries keyed by fingerprint. Put replaces any entry with
// the same fingerprint.
type Store interface {
	Put(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Open selects a store from configuration.
func Open(config util.JournalConfig) (Store, error) {
	switch config.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "bolt":
		store, err := OpenBoltStore(config.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "sqlite3", "mysql", "postgres":
		store, err := OpenSQLStore(config.Driver, config.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown journal driver %q", config.Driver)
	}
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]Entry{}}
}

func (m *MemoryStore) Put(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Fingerprint] = e
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// sortEntries orders by first sighting, then fingerprint.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].FirstSeen.Equal(entries[j].FirstSeen) {
			return entries[i].FirstSeen.Before(entries[j].FirstSeen)
		}
		return entries[i].Fingerprint < entries[j].Fingerprint
	})
}
