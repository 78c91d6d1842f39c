package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/navreet111/quickpark/internal/config"
	"github.com/navreet111/quickpark/internal/repository"
	"github.com/navreet111/quickpark/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db)), mock
}

func jsonRequest(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_Success(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (username, email, password_hash) VALUES (?,?,?)")).
		WithArgs("navreet", "navreet@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := jsonRequest(t, http.MethodPost, "/register",
		`{"username":"navreet","email":"navreet@example.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateUser(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("navreet", "navreet@example.com", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	c, rec := jsonRequest(t, http.MethodPost, "/register",
		`{"username":"navreet","email":"navreet@example.com","password":"secret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User already exists", resp["message"])
}

func TestRegister_MissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)

	c, rec := jsonRequest(t, http.MethodPost, "/register", `{"username":"navreet"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(42, "navreet", "navreet@example.com", hash, time.Now().UTC())
}

func TestLogin_Success(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,username,email,password_hash,created_at FROM users WHERE username=? LIMIT 1")).
		WithArgs("navreet").
		WillReturnRows(userRow(t, "secret"))

	c, rec := jsonRequest(t, http.MethodPost, "/login", `{"username":"navreet","password":"secret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string `json:"token"`
		UserID uint64 `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, uint64(42), resp.UserID)
}

func TestLogin_UserNotFound(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,username,email,password_hash,created_at FROM users")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonRequest(t, http.MethodPost, "/login", `{"username":"ghost","password":"secret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestLogin_InvalidPassword(t *testing.T) {
	h, mock := newAuthHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,username,email,password_hash,created_at FROM users")).
		WithArgs("navreet").
		WillReturnRows(userRow(t, "secret"))

	c, rec := jsonRequest(t, http.MethodPost, "/login", `{"username":"navreet","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
}
