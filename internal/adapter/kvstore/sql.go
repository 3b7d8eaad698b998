package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.KVStore = (*SQL)(nil)

const (
	snapshotsTable = "snapshots"
	colKey         = "snapshot_key"
	colValue       = "payload"
	colUpdatedAt   = "updated_at"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		snapshot_key TEXT PRIMARY KEY,
		payload      BLOB NOT NULL,
		updated_at   TIMESTAMP NOT NULL
	);`

// SQL keeps snapshots in a single table of a Postgres or SQLite database.
type SQL struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	now func() time.Time
}

// OpenPostgres connects through the pgx driver. The schema comes from
// the migrations.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	const op = "kvstore.OpenPostgres"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db, err := sql.Open("pgx", stdlib.RegisterConnConfig(connConfig))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := newSQL(db, sq.Dollar)
	if err := s.ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// OpenSQLite opens the database file at path and creates the schema when
// missing.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	const op = "kvstore.OpenSQLite"

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// sqlite serializes writers; one connection also keeps ":memory:"
	// databases alive and shared.
	db.SetMaxOpenConns(1)

	s := newSQL(db, sq.Question)
	if err := s.ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}
	return s, nil
}

func newSQL(db *sql.DB, ph sq.PlaceholderFormat) *SQL {
	return &SQL{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(ph).RunWith(db),
		now: time.Now,
	}
}

func (s *SQL) ping(ctx context.Context) error {
	const op = "SQL.ping"
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	slog.Info("database is available", "op", op)
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQL.Get"

	var value []byte
	err := s.sb.
		Select(colValue).
		From(snapshotsTable).
		Where(sq.Eq{colKey: key}).
		QueryRowContext(ctx).
		Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	const op = "SQL.Set"

	_, err := s.sb.
		Insert(snapshotsTable).
		Columns(colKey, colValue, colUpdatedAt).
		Values(key, value, s.now().UTC()).
		Suffix(
			"ON CONFLICT (" + colKey + ") DO UPDATE SET " +
				colValue + " = EXCLUDED." + colValue + ", " +
				colUpdatedAt + " = EXCLUDED." + colUpdatedAt,
		).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	const op = "SQL.Delete"

	_, err := s.sb.
		Delete(snapshotsTable).
		Where(sq.Eq{colKey: key}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *SQL) Close() {
	const op = "SQL.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("sql database is closed")
}
