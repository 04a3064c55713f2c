package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories. Sessions
// may optionally live in Redis instead (see WithRedisSessions).
type PostgresRepositoryManager struct {
	db    *sql.DB
	tx    *dbx.SQLTransactor
	redis *redis.Client
}

// Option configures a PostgresRepositoryManager.
type Option func(*PostgresRepositoryManager)

// WithRedisSessions stores sessions in Redis. The manager takes ownership of
// the client and closes it in Close.
func WithRedisSessions(client *redis.Client) Option {
	return func(m *PostgresRepositoryManager) {
		m.redis = client
	}
}

// OpenPostgres opens a pgx-backed *sql.DB for dsn.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB, opts ...Option) (*PostgresRepositoryManager, error) {
	if db == nil {
		return nil, errors.New("nil database handle")
	}

	m := &PostgresRepositoryManager{
		db: db,
		tx: dbx.NewSQLTransactor(db, nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

func (m *PostgresRepositoryManager) DB() dbx.DBTX {
	return m.db
}

func (m *PostgresRepositoryManager) WithinTx(ctx context.Context, fn dbx.TxFunc) error {
	return m.tx.WithinTx(ctx, fn)
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX, or the
// Redis repository when one is configured.
func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	if m.redis != nil {
		return sessions.NewRedisRepository(m.redis)
	}
	return sessions.NewPostgresRepository(db)
}

// Ping checks that every configured store answers.
func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	if m.redis != nil {
		if err := m.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	var errs []error
	if m.redis != nil {
		errs = append(errs, m.redis.Close())
	}
	errs = append(errs, m.db.Close())
	return errors.Join(errs...)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the managed database.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}
