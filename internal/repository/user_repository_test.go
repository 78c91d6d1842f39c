package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUser       = "INSERT INTO users (username, email, password_hash) VALUES (?,?,?)"
	selectByUsername = "SELECT id,username,email,password_hash,created_at FROM users WHERE username=? LIMIT 1"
)

func newUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreate_ReturnsInsertID(t *testing.T) {
	repo, mock := newUserRepo(t)

	// The stored hash is bcrypt output, so only username and email are
	// matched exactly.
	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WithArgs("navreet", "navreet@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), " navreet ", "Navreet@Example.com", "secret", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateMapsToErrUserExists(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WithArgs("navreet", "navreet@example.com", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'navreet' for key 'users.username'"))

	_, err := repo.Create(context.Background(), "navreet", "navreet@example.com", "secret", 4)
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername(t *testing.T) {
	repo, mock := newUserRepo(t)

	created := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("navreet").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(42, "navreet", "navreet@example.com", "$2a$10$hash", created))

	u, err := repo.GetByUsername(context.Background(), "navreet")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), u.ID)
	assert.Equal(t, "navreet", u.Username)
	assert.Equal(t, "navreet@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername_Missing(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectByUsername)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
