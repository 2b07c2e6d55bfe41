package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
	"github.com/rogerio-castellano/shopify-products-admin/internal/redissvc"
)

const sessionKeyPrefix = "session:"

type cachedSession struct {
	Shop           string    `json:"shop"`
	AccessTokenEnc string    `json:"access_token_enc"`
	Scope          string    `json:"scope"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CachedSessionRepository reads sessions through redis before falling back
// to the wrapped repository. Cache errors are logged and never fail a call.
type CachedSessionRepository struct {
	next   SessionRepository
	redis  *redissvc.RedisService
	cipher *TokenCipher
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSessionRepository(next SessionRepository, rs *redissvc.RedisService, cipher *TokenCipher, ttl time.Duration, logger *slog.Logger) *CachedSessionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSessionRepository{next: next, redis: rs, cipher: cipher, ttl: ttl, logger: logger}
}

func sessionKey(shop string) string {
	return sessionKeyPrefix + shop
}

func (r *CachedSessionRepository) Save(ctx context.Context, s models.Session) error {
	if err := r.next.Save(ctx, s); err != nil {
		return err
	}
	r.evict(ctx, s.Shop)
	return nil
}

func (r *CachedSessionRepository) GetByShop(ctx context.Context, shop string) (models.Session, error) {
	var c cachedSession
	found, err := r.redis.GetJSON(ctx, sessionKey(shop), &c)
	if err != nil {
		r.logger.WarnContext(ctx, "session cache read failed", slog.String("shop", shop), slog.Any("error", err))
	}
	if found {
		token, err := r.cipher.Decrypt(c.AccessTokenEnc)
		if err == nil {
			return models.Session{
				Shop:        c.Shop,
				AccessToken: token,
				Scope:       c.Scope,
				CreatedAt:   c.CreatedAt,
				UpdatedAt:   c.UpdatedAt,
			}, nil
		}
		r.logger.WarnContext(ctx, "discarding undecryptable cached session", slog.String("shop", shop))
	}

	s, err := r.next.GetByShop(ctx, shop)
	if err != nil {
		return models.Session{}, err
	}
	r.store(ctx, s)
	return s, nil
}

func (r *CachedSessionRepository) Delete(ctx context.Context, shop string) error {
	err := r.next.Delete(ctx, shop)
	r.evict(ctx, shop)
	return err
}

func (r *CachedSessionRepository) store(ctx context.Context, s models.Session) {
	enc, err := r.cipher.Encrypt(s.AccessToken)
	if err != nil {
		r.logger.WarnContext(ctx, "session cache encrypt failed", slog.String("shop", s.Shop), slog.Any("error", err))
		return
	}
	c := cachedSession{
		Shop:           s.Shop,
		AccessTokenEnc: enc,
		Scope:          s.Scope,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if err := r.redis.SetJSON(ctx, sessionKey(s.Shop), c, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "session cache write failed", slog.String("shop", s.Shop), slog.Any("error", err))
	}
}

func (r *CachedSessionRepository) evict(ctx context.Context, shop string) {
	if err := r.redis.Del(ctx, sessionKey(shop)); err != nil {
		r.logger.WarnContext(ctx, "session cache evict failed", slog.String("shop", shop), slog.Any("error", err))
	}
}
