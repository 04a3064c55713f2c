package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the session keyed by user id. A conflict on user_id is
// absorbed; a conflict on the token primary key is reported as a collision.
func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) (bool, error) {
	query :=
		`INSERT INTO sessions (token, user_id, user_email)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, session.Token, session.UserID, session.UserEmail)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, common.ErrTokenCollision
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Session, error) {
	query :=
		`SELECT token, user_id, user_email, created_at FROM sessions
		 WHERE user_id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query :=
		`SELECT token, user_id, user_email, created_at FROM sessions
		 WHERE token = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Session, error) {
	s := &models.Session{}
	if err := row.Scan(&s.Token, &s.UserID, &s.UserEmail, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
