package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+sessions\s*\(token,\s*user_id,\s*user_email\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+NOTHING\s*$`

func testSession() *models.Session {
	return &models.Session{Token: "tok123", UserID: "u1", UserEmail: "a@x.com"}
}

func TestCreate_Inserted(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("tok123", "u1", "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_UserAlreadyHasSession(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("tok123", "u1", "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), testSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false")
	}
}

func TestCreate_TokenCollision(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sessions_pkey"})

	_, err := repo.Create(context.Background(), testSession())
	if !errors.Is(err, common.ErrTokenCollision) {
		t.Fatalf("expected ErrTokenCollision, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), testSession())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^SELECT\s+token,\s*user_id,\s*user_email,\s*created_at\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs("tok123").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "user_email", "created_at"}).
			AddRow("tok123", "u1", "a@x.com", now))

	s, err := repo.FindByToken(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
	if s.UserID != "u1" || s.UserEmail != "a@x.com" || !s.CreatedAt.Equal(now) {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM\s+sessions\s+WHERE\s+token`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestFindByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+token,\s*user_id,\s*user_email,\s*created_at\s+FROM\s+sessions\s+WHERE\s+user_id\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "user_email", "created_at"}).
			AddRow("tok123", "u1", "a@x.com", time.Now()))

	s, err := repo.FindByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FindByUserID error: %v", err)
	}
	if s.Token != "tok123" {
		t.Fatalf("unexpected token: %q", s.Token)
	}
}

func TestFindByUserID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.+\s+FROM\s+sessions\s+WHERE\s+user_id`).
		WillReturnError(errors.New("boom"))

	_, err := repo.FindByUserID(context.Background(), "u1")
	if err == nil || errors.Is(err, common.ErrorNotFound) || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
