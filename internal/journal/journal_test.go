package journal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kr/pretty"

	"skein/internal/errs"
	"skein/internal/object"
	"skein/internal/util"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newJournal(t *testing.T, store Store) (*Journal, *clock) {
	t.Helper()
	j, err := New(context.Background(), store)
	if err != nil {
		t.Fatalf("opening journal: %v", err)
	}
	c := &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	j.now = c.now
	return j, c
}

func stores(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"sqlite3": func(t *testing.T) Store {
			s, err := OpenSQLStore("sqlite3", ":memory:")
			if err != nil {
				t.Fatalf("opening sqlite3: %v", err)
			}
			return s
		},
		"bolt": func(t *testing.T) Store {
			s, err := OpenBoltStore(filepath.Join(t.TempDir(), "journal.db"))
			if err != nil {
				t.Fatalf("opening bolt: %v", err)
			}
			return s
		},
	}
}

func TestRecordCollapsesDuplicates(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			j, _ := newJournal(t, store)
			defer j.Close()
			ctx := context.Background()

			sym := object.Intern("x")
			failures := []error{
				errs.UnboundVariable(sym),
				errs.UnboundVariable(object.Intern("x")),
				errs.Box(errs.UnboundVariable(sym)),
				errs.DivisionByZero(),
				errs.UnboundVariable(sym),
			}
			expectedNew := []bool{true, false, false, true, false}

			for i, failure := range failures {
				_, fresh, err := j.Record(ctx, failure)
				if err != nil {
					t.Fatalf("record %d: %v", i, err)
				}
				if fresh != expectedNew[i] {
					t.Errorf("record %d: expected new=%v, got %v", i, expectedNew[i], fresh)
				}
			}

			entries, err := j.Entries(ctx)
			if err != nil {
				t.Fatalf("entries: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d: %# v", len(entries), pretty.Formatter(entries))
			}

			unbound := entries[0]
			if unbound.Count != 4 {
				t.Errorf("expected 4 unbound variable failures, got %d", unbound.Count)
			}
			if unbound.Description != errs.UnboundVariable(sym).Error() {
				t.Errorf("unexpected description %q", unbound.Description)
			}
			if unbound.Type != "eval error" || unbound.Kind != "eval error" {
				t.Errorf("unexpected category %s/%s", unbound.Type, unbound.Kind)
			}
			if !unbound.LastSeen.After(unbound.FirstSeen) {
				t.Errorf("last seen %v should follow first seen %v", unbound.LastSeen, unbound.FirstSeen)
			}
			if entries[1].Count != 1 || entries[1].Message != errs.DivisionByZero().Message() {
				t.Errorf("unexpected second entry: %# v", pretty.Formatter(entries[1]))
			}
		})
	}
}

func TestRecordIgnoresNil(t *testing.T) {
	j, _ := newJournal(t, NewMemoryStore())
	entry, fresh, err := j.Record(context.Background(), nil)
	if err != nil || fresh || entry.Count != 0 {
		t.Errorf("nil should not be recorded: %v %v %v", entry, fresh, err)
	}
}

func TestRecordHostErrors(t *testing.T) {
	j, _ := newJournal(t, NewMemoryStore())
	ctx := context.Background()
	if _, _, err := j.Record(ctx, syscall.ENOENT); err != nil {
		t.Fatal(err)
	}
	entry, fresh, err := j.Record(ctx, syscall.ENOENT)
	if err != nil {
		t.Fatal(err)
	}
	if fresh || entry.Count != 2 {
		t.Errorf("expected the second ENOENT to collapse, got new=%v count=%d", fresh, entry.Count)
	}
	if entry.Type != "os error" {
		t.Errorf("expected os error, got %s", entry.Type)
	}
}

func TestRecordCyclicPayload(t *testing.T) {
	cyclic := func() *object.Vector {
		v := &object.Vector{Elements: make([]object.Object, 1)}
		v.Elements[0] = v
		return v
	}
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			j, _ := newJournal(t, open(t))
			defer j.Close()
			ctx := context.Background()

			if _, _, err := j.Record(ctx, errs.IndexOutOfBounds(5, 0, cyclic())); err != nil {
				t.Fatal(err)
			}
			entry, fresh, err := j.Record(ctx, errs.IndexOutOfBounds(5, 0, cyclic()))
			if err != nil {
				t.Fatal(err)
			}
			if fresh || entry.Count != 2 {
				t.Errorf("expected the second failure to collapse, got new=%v count=%d", fresh, entry.Count)
			}
			if !strings.Contains(entry.Description, "#<cycle>") {
				t.Errorf("unexpected description %q", entry.Description)
			}
		})
	}
}

func TestCountsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()
	failure := errs.NewCustom("range", "bad index", object.NewFixnum(5))

	store, err := OpenBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	j, _ := newJournal(t, store)
	if _, _, err := j.Record(ctx, failure); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = OpenBoltStore(path)
	if err != nil {
		t.Fatal(err)
	}
	j, _ = newJournal(t, store)
	defer j.Close()

	entry, fresh, err := j.Record(ctx, errs.NewCustom("range", "bad index", object.NewFixnum(5)))
	if err != nil {
		t.Fatal(err)
	}
	if fresh {
		t.Errorf("failure from a previous run should not be new")
	}
	if entry.Count != 2 {
		t.Errorf("expected count 2 across runs, got %d", entry.Count)
	}
}

func TestClear(t *testing.T) {
	for name, open := range stores(t) {
		t.Run(name, func(t *testing.T) {
			j, _ := newJournal(t, open(t))
			defer j.Close()
			ctx := context.Background()

			if _, _, err := j.Record(ctx, errs.DivisionByZero()); err != nil {
				t.Fatal(err)
			}
			if err := j.Clear(ctx); err != nil {
				t.Fatal(err)
			}
			entries, err := j.Entries(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("expected empty journal, got %d entries", len(entries))
			}
			_, fresh, err := j.Record(ctx, errs.DivisionByZero())
			if err != nil {
				t.Fatal(err)
			}
			if !fresh {
				t.Errorf("failure recorded after clear should be new")
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(errs.UnboundVariable(object.Intern("x")))
	b := Fingerprint(errs.Box(errs.UnboundVariable(object.Intern("x"))))
	c := Fingerprint(errs.UnboundVariable(object.Intern("y")))
	if a != b {
		t.Errorf("boxed failure should share the fingerprint")
	}
	if a == c {
		t.Errorf("different failures should not share a fingerprint")
	}
	if len(a) != 64 {
		t.Errorf("expected a 256 bit hex digest, got %q", a)
	}
}

type failingStore struct{ MemoryStore }

func (f *failingStore) Put(context.Context, Entry) error { return syscall.EIO }

func TestStoreFailuresBecomeOsErrors(t *testing.T) {
	j, _ := newJournal(t, &failingStore{MemoryStore: MemoryStore{entries: map[string]Entry{}}})
	_, _, err := j.Record(context.Background(), errs.DivisionByZero())
	lerr, ok := errs.As(err)
	if !ok || lerr.Type() != errs.OS {
		t.Fatalf("expected os error, got %v", err)
	}
	if !errors.Is(err, syscall.EIO) {
		t.Errorf("expected the cause to unwrap to EIO")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		config  util.JournalConfig
		wantErr bool
	}{
		{"default", util.JournalConfig{}, false},
		{"memory", util.JournalConfig{Driver: "memory"}, false},
		{"sqlite3", util.JournalConfig{Driver: "sqlite3", DSN: ":memory:"}, false},
		{"bolt", util.JournalConfig{Driver: "bolt", DSN: filepath.Join(t.TempDir(), "j.db")}, false},
		{"bolt without path", util.JournalConfig{Driver: "bolt"}, true},
		{"unknown", util.JournalConfig{Driver: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if store != nil {
				store.Close()
			}
		})
	}
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{driver: "postgres"}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("unexpected postgres query %q", got)
	}
	lite := &SQLStore{driver: "sqlite3"}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("unexpected sqlite3 query %q", got)
	}
}
