// Package postgres is the Postgres-backed dictcache.Store (table sys_dict).
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unkn0wn-root/dictcache"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements dictcache.Store on sys_dict.
type Store struct {
	db DBTX
}

var _ dictcache.Store = (*Store)(nil)

func New(db DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates sys_dict and its index when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}

const selectAll = `
SELECT id, type, code, value, label, sort_order, status, remark, created_at, updated_at
FROM sys_dict
WHERE status = $1
ORDER BY sort_order, created_at, id`

func (s *Store) GetAll(ctx context.Context, template dictcache.Entry) ([]dictcache.Entry, error) {
	rows, err := s.db.Query(ctx, selectAll, dictcache.StatusFilter(template))
	if err != nil {
		return nil, fmt.Errorf("postgres: query sys_dict: %w", err)
	}
	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("postgres: scan sys_dict: %w", err)
	}
	return entries, nil
}

const insertOne = `
INSERT INTO sys_dict (id, type, code, value, label, sort_order, status, remark, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING created_at, updated_at`

func (s *Store) Insert(ctx context.Context, e dictcache.Entry) (dictcache.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == 0 {
		e.Status = dictcache.StatusValid
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	err := s.db.QueryRow(ctx, insertOne,
		e.ID, e.Type, e.Code, e.Value, nullText(e.Label), e.SortOrder, e.Status, nullText(e.Remark), created,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return dictcache.Entry{}, fmt.Errorf("postgres: insert sys_dict: %w", err)
	}
	return e, nil
}

func scanEntry(row pgx.CollectableRow) (dictcache.Entry, error) {
	var (
		e             dictcache.Entry
		label, remark pgtype.Text
	)
	err := row.Scan(&e.ID, &e.Type, &e.Code, &e.Value, &label, &e.SortOrder, &e.Status, &remark, &e.CreatedAt, &e.UpdatedAt)
	e.Label = label.String
	e.Remark = remark.String
	return e, err
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// Config describes the pool dictcached opens.
type Config struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// Connect opens a pgx pool from cfg.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(fmt.Sprintf(
		"host=%s user=%s password=%s port=%d sslmode=%s dbname=%s pool_max_conns=%d pool_min_conns=%d",
		cfg.Host, cfg.User, cfg.Password, cfg.Port, cfg.SSLMode, cfg.Name, cfg.MaxConns, cfg.MinConns,
	))
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	return pgxpool.NewWithConfig(ctx, pc)
}
