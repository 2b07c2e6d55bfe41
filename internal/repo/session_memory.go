package repo

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

// InMemorySessionRepository is an in-memory implementation of SessionRepository.
type InMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{sessions: map[string]models.Session{}}
}

func (r *InMemorySessionRepository) Save(_ context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := r.sessions[s.Shop]; ok {
		s.CreatedAt = existing.CreatedAt
	} else if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.sessions[s.Shop] = s
	return nil
}

func (r *InMemorySessionRepository) GetByShop(_ context.Context, shop string) (models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[shop]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (r *InMemorySessionRepository) Delete(_ context.Context, shop string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[shop]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, shop)
	return nil
}

func (r *InMemorySessionRepository) Clear() {
	r.mu.Lock()
	r.sessions = map[string]models.Session{}
	r.mu.Unlock()
}
