package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

// SessionRepository stores one offline session per shop.
type SessionRepository interface {
	Save(ctx context.Context, s models.Session) error
	GetByShop(ctx context.Context, shop string) (models.Session, error)
	Delete(ctx context.Context, shop string) error
}

// ErrSessionNotFound is returned when a shop has no stored session.
var ErrSessionNotFound = errors.New("session not found")
