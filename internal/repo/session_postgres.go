package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

type PostgresSessionRepository struct {
	db     *sql.DB
	cipher *TokenCipher
}

func NewPostgresSessionRepository(db *sql.DB, cipher *TokenCipher) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, cipher: cipher}
}

func (r *PostgresSessionRepository) Save(ctx context.Context, s models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	enc, err := r.cipher.Encrypt(s.AccessToken)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	query := `INSERT INTO shopify_sessions (shop, access_token, scope, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (shop) DO UPDATE SET access_token = EXCLUDED.access_token, scope = EXCLUDED.scope, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, s.Shop, enc, s.Scope, now); err != nil {
		return fmt.Errorf("failed to save session for %s: %w", s.Shop, err)
	}
	return nil
}

func (r *PostgresSessionRepository) GetByShop(ctx context.Context, shop string) (models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s models.Session
	var enc string
	err := r.db.QueryRowContext(ctx, `SELECT shop, access_token, scope, created_at, updated_at FROM shopify_sessions WHERE shop = $1`, shop).
		Scan(&s.Shop, &enc, &s.Scope, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}

	s.AccessToken, err = r.cipher.Decrypt(enc)
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, shop string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM shopify_sessions WHERE shop = $1`, shop)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
