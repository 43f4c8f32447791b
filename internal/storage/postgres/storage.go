package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	"github.com/kashieternal/rewardsgate/internal/session"
)

// dbPool is the subset of pgxpool.Pool the storage needs; tests substitute a
// mock pool through it.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is a seam for tests to substitute pool construction.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type sessionRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Sessions returns the session repository adapter.
func (s *Storage) Sessions() session.Repository {
	return &sessionRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
            id UUID PRIMARY KEY,
            kind TEXT NOT NULL,
            token TEXT NOT NULL,
            member_id TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            admin_name TEXT NOT NULL DEFAULT '',
            admin_role TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            expires_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- session.Repository implementation ---

func (r *sessionRepository) Save(ctx context.Context, s *model.Session) error {
	const query = `INSERT INTO sessions (id, kind, token, member_id, phone, admin_name, admin_role, created_at, expires_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   ON CONFLICT (id) DO UPDATE
                   SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`
	_, err := r.storage.pool.Exec(ctx, query,
		s.ID, string(s.Kind), s.Token, s.MemberID, s.Phone, s.AdminName, s.AdminRole, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	const query = `SELECT id, kind, token, member_id, phone, admin_name, admin_role, created_at, expires_at
                   FROM sessions WHERE id=$1`
	var s model.Session
	var kind string
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &kind, &s.Token, &s.MemberID, &s.Phone, &s.AdminName, &s.AdminRole, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	s.Kind = model.SessionKind(kind)
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

func (r *sessionRepository) SelectExpired(ctx context.Context, now time.Time, limit int) ([]string, error) {
	const query = `SELECT id FROM sessions WHERE expires_at <= $1 ORDER BY expires_at LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
