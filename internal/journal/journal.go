// Package journal collapses repeated failures into counted entries and keeps
// them in a Store.
package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"skein/internal/errs"
)

type slot struct {
	err   errs.LispError
	entry *Entry
}

// Journal buckets failures by Hash and confirms duplicates with Equals.
// Failures that are not equal but render identically share one entry, as
// the store keys entries by fingerprint.
type Journal struct {
	mu      sync.Mutex
	store   Store
	buckets map[uint64][]*slot
	entries map[string]*Entry
	now     func() time.Time
	log     *slog.Logger
}

// New loads the entries already in store so counts carry across processes.
func New(ctx context.Context, store Store) (*Journal, error) {
	stored, err := store.List(ctx)
	if err != nil {
		return nil, errs.FromHost(err)
	}
	entries := make(map[string]*Entry, len(stored))
	for i := range stored {
		entries[stored[i].Fingerprint] = &stored[i]
	}
	return &Journal{
		store:   store,
		buckets: map[uint64][]*slot{},
		entries: entries,
		now:     time.Now,
		log:     slog.Default().With(slog.String("component", "journal")),
	}, nil
}

// Record counts err and reports whether it had not been seen before.
func (j *Journal) Record(ctx context.Context, err error) (Entry, bool, error) {
	lerr := errs.FromHost(err)
	if lerr == nil {
		return Entry{}, false, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	h := lerr.Hash()
	var current *Entry
	for _, s := range j.buckets[h] {
		if s.err.Equals(lerr) {
			current = s.entry
			break
		}
	}
	bucketed := current != nil
	if current == nil {
		current = j.entries[Fingerprint(lerr)]
	}
	fresh := current == nil

	var next Entry
	if fresh {
		next = newEntry(lerr)
	} else {
		next = *current
	}
	now := j.now().UTC()
	if next.Count == 0 {
		next.FirstSeen = now
	}
	next.Count++
	next.LastSeen = now

	if err := j.store.Put(ctx, next); err != nil {
		return Entry{}, false, errs.FromHost(err)
	}

	if fresh {
		current = &Entry{}
		j.entries[next.Fingerprint] = current
	}
	*current = next
	if !bucketed {
		j.buckets[h] = append(j.buckets[h], &slot{err: lerr, entry: current})
	}

	j.log.Debug("recorded failure",
		slog.String("fingerprint", next.Fingerprint),
		slog.Int64("count", next.Count),
		slog.Bool("new", fresh))
	return next, fresh, nil
}

func newEntry(lerr errs.LispError) Entry {
	return Entry{
		Fingerprint: Fingerprint(lerr),
		Type:        lerr.Type().String(),
		Kind:        lerr.Kind(),
		Message:     lerr.Message(),
		Description: lerr.Error(),
	}
}

func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.store.List(ctx)
	if err != nil {
		return nil, errs.FromHost(err)
	}
	return entries, nil
}

// Clear forgets every entry, in memory and in the store.
func (j *Journal) Clear(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.store.Clear(ctx); err != nil {
		return errs.FromHost(err)
	}
	j.buckets = map[uint64][]*slot{}
	j.entries = map[string]*Entry{}
	return nil
}

func (j *Journal) Close() error {
	if err := j.store.Close(); err != nil {
		return errs.FromHost(err)
	}
	return nil
}
