package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL driver and placeholder style.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

const schema = `CREATE TABLE IF NOT EXISTS plan_runs (
        id TEXT PRIMARY KEY,
        created_at BIGINT NOT NULL,
        routes INTEGER NOT NULL,
        vehicles INTEGER NOT NULL,
        interlining INTEGER NOT NULL,
        cost DOUBLE PRECISION NOT NULL,
        feasible INTEGER NOT NULL,
        record TEXT NOT NULL
    );`

// SQLStore persists runs in SQLite or Postgres. The full run is kept as JSON
// next to the summary columns used for listing.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLiteStore opens or creates the database file and ensures the schema.
func NewSQLiteStore(path string) (*SQLStore, error) {
	return open(SQLite, "sqlite", path)
}

// NewPostgresStore connects using a pgx connection string and ensures the schema.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	return open(Postgres, "pgx", dsn)
}

func open(d Dialect, driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if d == SQLite {
		// modernc serialises writers per connection.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s schema: %w", d, err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// rebind turns '?' placeholders into '$n' for Postgres.
func (s *SQLStore) rebind(q string) string {
	if s.dialect != Postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
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

// Save inserts or replaces r.
func (s *SQLStore) Save(ctx context.Context, r Run) error {
	rec, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", r.ID, err)
	}
	sum := r.Summary()
	feasible := 0
	if sum.Feasible {
		feasible = 1
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`INSERT INTO plan_runs
        (id, created_at, routes, vehicles, interlining, cost, feasible, record)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            created_at = excluded.created_at,
            routes = excluded.routes,
            vehicles = excluded.vehicles,
            interlining = excluded.interlining,
            cost = excluded.cost,
            feasible = excluded.feasible,
            record = excluded.record`),
		sum.ID, sum.CreatedAt.UnixNano(), sum.Routes, sum.Vehicles, sum.Interlining, sum.Cost, feasible, string(rec))
	return err
}

// Get returns the run with the given id.
func (s *SQLStore) Get(ctx context.Context, id string) (Run, error) {
	var rec string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT record FROM plan_runs WHERE id = ?`), id).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	var r Run
	if err := json.Unmarshal([]byte(rec), &r); err != nil {
		return Run{}, fmt.Errorf("decode run %s: %w", id, err)
	}
	return r, nil
}

// List returns summaries newest first.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Summary, error) {
	q := `SELECT id, created_at, routes, vehicles, interlining, cost, feasible
        FROM plan_runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []Summary
	for rows.Next() {
		var (
			sum      Summary
			ts       int64
			feasible int
		)
		if err := rows.Scan(&sum.ID, &ts, &sum.Routes, &sum.Vehicles, &sum.Interlining, &sum.Cost, &feasible); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(0, ts).UTC()
		sum.Feasible = feasible != 0
		res = append(res, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error { return s.db.Close() }
