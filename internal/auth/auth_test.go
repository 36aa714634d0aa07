package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tradeops/tradesearch/pkg/errors"
	"github.com/tradeops/tradesearch/pkg/postgres"
)

var keyColumns = []string{"id", "name", "rate_limit", "created_at", "expires_at"}

func newMockValidator(t *testing.T) (*Validator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewValidator(&postgres.Client{DB: db}), mock
}

func TestValidate(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectQuery("SELECT id, name, rate_limit").
		WithArgs(HashKey("good-key")).
		WillReturnRows(sqlmock.NewRows(keyColumns).
			AddRow("k1", "reporting", 120, time.Now(), nil))

	key, err := v.Validate(context.Background(), "good-key")
	require.NoError(t, err)
	assert.Equal(t, "k1", key.ID)
	assert.Equal(t, 120, key.RateLimit)
	assert.Nil(t, key.ExpiresAt)
}

func TestValidateUnknownKey(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectQuery("SELECT id, name, rate_limit").
		WillReturnRows(sqlmock.NewRows(keyColumns))

	_, err := v.Validate(context.Background(), "bad-key")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateExpiredKey(t *testing.T) {
	v, mock := newMockValidator(t)

	expired := time.Now().Add(-time.Hour)
	mock.ExpectQuery("SELECT id, name, rate_limit").
		WillReturnRows(sqlmock.NewRows(keyColumns).
			AddRow("k1", "reporting", 120, time.Now().Add(-48*time.Hour), expired))

	_, err := v.Validate(context.Background(), "old-key")
	assert.ErrorIs(t, err, ErrExpiredKey)
}

func TestCreateReturnsRawKey(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectExec("INSERT INTO api_keys").
		WillReturnResult(sqlmock.NewResult(1, 1))

	raw, err := v.Create(context.Background(), "reporting", 120, nil)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}

func TestRevokeUnknownKey(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectExec("UPDATE api_keys SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := v.Revoke(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRotate(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT name, rate_limit, expires_at").
		WithArgs(HashKey("old-key")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "rate_limit", "expires_at"}).
			AddRow("reporting", 120, nil))
	mock.ExpectExec("UPDATE api_keys SET is_active").
		WithArgs(HashKey("old-key")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO api_keys").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	raw, err := v.Rotate(context.Background(), "old-key")
	require.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRotateUnknownKeyRollsBack(t *testing.T) {
	v, mock := newMockValidator(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT name, rate_limit, expires_at").
		WillReturnRows(sqlmock.NewRows([]string{"name", "rate_limit", "expires_at"}))
	mock.ExpectRollback()

	_, err := v.Rotate(context.Background(), "no-such-key")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimiterAllowsWithinBudget(t *testing.T) {
	l := NewLimiter(time.Minute)
	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("k1", 5), "request %d", i)
	}
	assert.False(t, l.Allow("k1", 5))
	// Other keys are unaffected.
	assert.True(t, l.Allow("k2", 5))
}

func TestMiddlewareHealthExempt(t *testing.T) {
	handler := Middleware(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRejectsMissingKey(t *testing.T) {
	handler := Middleware(nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shipments/search", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareValidKeyReachesHandler(t *testing.T) {
	v, mock := newMockValidator(t)
	mock.ExpectQuery("SELECT id, name, rate_limit").
		WillReturnRows(sqlmock.NewRows(keyColumns).
			AddRow("k1", "reporting", 0, time.Now(), nil))

	var seen *Key
	handler := Middleware(v, NewLimiter(time.Minute))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = KeyFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipments/search", nil)
	req.Header.Set("X-API-Key", "good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "k1", seen.ID)
}
