package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const createTable = `CREATE TABLE IF NOT EXISTS skein_journal (
	fingerprint VARCHAR(64) NOT NULL PRIMARY KEY,
	category VARCHAR(32) NOT NULL,
	kind VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	description TEXT NOT NULL,
	hits BIGINT NOT NULL,
	first_seen BIGINT NOT NULL,
	last_seen BIGINT NOT NULL
)`

// SQLStore keeps entries in a single table. Timestamps are stored as unix
// nanoseconds so every driver reads them back the same way.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s journal: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s journal: %w", driver, err)
	}
	if driver == "sqlite3" {
		// :memory: databases are per connection
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal table: %w", err)
	}
	return &SQLStore{db: db, driver: driver}, nil
}

// rebind rewrites ? placeholders for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Put(ctx context.Context, e Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM skein_journal WHERE fingerprint = ?`), e.Fingerprint); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO skein_journal
		(fingerprint, category, kind, message, description, hits, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		e.Fingerprint, e.Type, e.Kind, e.Message, e.Description, e.Count,
		e.FirstSeen.UnixNano(), e.LastSeen.UnixNano())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		fingerprint, category, kind, message, description, hits, first_seen, last_seen
		FROM skein_journal`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			first, last int64
		)
		if err := rows.Scan(&e.Fingerprint, &e.Type, &e.Kind, &e.Message, &e.Description, &e.Count, &first, &last); err != nil {
			return nil, err
		}
		e.FirstSeen = time.Unix(0, first).UTC()
		e.LastSeen = time.Unix(0, last).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortEntries(entries)
	return entries, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM skein_journal`)
	return err
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
