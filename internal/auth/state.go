package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/shopify-products-admin/internal/redissvc"
)

// StateTTL bounds how long a merchant may take on the consent screen.
const StateTTL = 10 * time.Minute

var ErrStateNotFound = errors.New("oauth state not found or expired")

// StateStore keeps one-shot OAuth state values bound to a shop.
type StateStore interface {
	Put(ctx context.Context, state, shop string) error
	Consume(ctx context.Context, state string) (string, error)
}

const stateKeyPrefix = "oauth:state:"

type RedisStateStore struct {
	redis *redissvc.RedisService
}

func NewRedisStateStore(rs *redissvc.RedisService) *RedisStateStore {
	return &RedisStateStore{redis: rs}
}

func (s *RedisStateStore) Put(ctx context.Context, state, shop string) error {
	return s.redis.Rdb().Set(ctx, stateKeyPrefix+state, shop, StateTTL).Err()
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (string, error) {
	shop, err := s.redis.Rdb().GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	return shop, err
}

type memoryState struct {
	shop      string
	expiresAt time.Time
}

type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]memoryState
	now    func() time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: map[string]memoryState{}, now: time.Now}
}

func (s *MemoryStateStore) Put(_ context.Context, state, shop string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, v := range s.states {
		if now.After(v.expiresAt) {
			delete(s.states, k)
		}
	}
	s.states[state] = memoryState{shop: shop, expiresAt: now.Add(StateTTL)}
	return nil
}

func (s *MemoryStateStore) Consume(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.states[state]
	delete(s.states, state)
	if !ok || s.now().After(v.expiresAt) {
		return "", ErrStateNotFound
	}
	return v.shop, nil
}
