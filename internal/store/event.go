package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder renders every repo query for SQLite.
var builder = entsql.Dialect(dialect.SQLite)

// sequenceCounter hands out the sequence numbers stored on every event,
// so assessments and LLM calls can be ordered against each other. The
// counter row lives in global_sequence outside the ent schemas: ent has no
// atomic counter, so the bump is a raw UPDATE ... RETURNING under a mutex.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id       INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("store: sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	row := c.db.QueryRowContext(ctx, `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("store: next sequence: %w", err)
	}
	return n, nil
}

// eventRepo implements EventRepo on the ent SQL builders.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// Reset deletes every recorded event. The sequence keeps counting.
func (r *eventRepo) Reset(ctx context.Context) error {
	for _, table := range []string{llmEventsTable, assessmentsTable} {
		if err := execute(ctx, r.drv, builder.Delete(table)); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// selectEvents starts a newest-first query on table narrowed by the
// sequence and time bounds of opts. eq adds equality filters; empty
// values are skipped.
func selectEvents(table string, columns []string, opts QueryOpts, eq map[string]string) *entsql.Selector {
	sel := builder.Select(columns...).From(builder.Table(table)).OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	for column, value := range eq {
		if value != "" {
			sel.Where(entsql.EQ(column, value))
		}
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func execute(ctx context.Context, drv *entsql.Driver, q entsql.Querier) error {
	query, args := q.Query()
	return drv.Exec(ctx, query, args, nil)
}

// scanAll runs q and calls scan once per row.
func scanAll(ctx context.Context, drv *entsql.Driver, q entsql.Querier, scan func(*entsql.Rows) error) error {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func now() time.Time { return time.Now().UTC() }
