package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepo(t *testing.T) (*PostgresSessionRepository, sqlmock.Sqlmock, *TokenCipher) {
	t.Helper()
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	cipher := newTestCipher(t)
	return NewPostgresSessionRepository(database, cipher), mock, cipher
}

func TestPostgresSessionRepository_Save(t *testing.T) {
	r, mock, _ := newPostgresRepo(t)

	mock.ExpectExec("INSERT INTO shopify_sessions").
		WithArgs("demo.myshopify.com", sqlmock.AnyArg(), "read_products", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Save(context.Background(), models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_1", Scope: "read_products"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_SaveError(t *testing.T) {
	r, mock, _ := newPostgresRepo(t)

	mock.ExpectExec("INSERT INTO shopify_sessions").WillReturnError(errors.New("err-insert"))

	err := r.Save(context.Background(), models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "err-insert")
}

func TestPostgresSessionRepository_GetByShop(t *testing.T) {
	r, mock, cipher := newPostgresRepo(t)
	enc, err := cipher.Encrypt("shpat_1")
	require.NoError(t, err)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cols := []string{"shop", "access_token", "scope", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT shop, access_token").
		WithArgs("demo.myshopify.com").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("demo.myshopify.com", enc, "read_products", now, now))
	mock.ExpectQuery("SELECT shop, access_token").
		WithArgs("missing.myshopify.com").
		WillReturnRows(sqlmock.NewRows(cols))

	s, err := r.GetByShop(context.Background(), "demo.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "shpat_1", s.AccessToken)
	assert.Equal(t, "read_products", s.Scope)
	assert.Equal(t, now, s.CreatedAt)

	_, err = r.GetByShop(context.Background(), "missing.myshopify.com")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSessionRepository_Delete(t *testing.T) {
	r, mock, _ := newPostgresRepo(t)

	mock.ExpectExec("DELETE FROM shopify_sessions").WithArgs("demo.myshopify.com").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM shopify_sessions").WithArgs("gone.myshopify.com").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, r.Delete(context.Background(), "demo.myshopify.com"))
	assert.ErrorIs(t, r.Delete(context.Background(), "gone.myshopify.com"), ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
