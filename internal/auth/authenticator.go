package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
	"github.com/rogerio-castellano/shopify-products-admin/internal/repo"
)

// Authenticator resolves the shop session an admin request acts for.
type Authenticator interface {
	Authenticate(r *http.Request) (models.Session, error)
}

// ChallengeError means the request must re-authenticate. Shop is set when
// the request named a valid shop. Installed is set when that shop already
// has a stored session, so only a fresh session token is needed.
type ChallengeError struct {
	Shop      string
	Bearer    bool
	Installed bool
	Err       error
}

func (e *ChallengeError) Error() string {
	return "authentication required: " + e.Err.Error()
}

func (e *ChallengeError) Unwrap() error {
	return e.Err
}

var ErrMissingSessionToken = errors.New("missing session token")

type ShopAuthenticator struct {
	apiKey    string
	apiSecret string
	sessions  repo.SessionRepository
}

func NewShopAuthenticator(apiKey, apiSecret string, sessions repo.SessionRepository) *ShopAuthenticator {
	return &ShopAuthenticator{apiKey: apiKey, apiSecret: apiSecret, sessions: sessions}
}

// Authenticate reads the session token from the Authorization header or,
// for document loads inside the admin, from the id_token query parameter.
func (a *ShopAuthenticator) Authenticate(r *http.Request) (models.Session, error) {
	shopParam := NormalizeShop(r.URL.Query().Get("shop"))

	tokenStr, bearer := sessionTokenFrom(r)
	if tokenStr == "" {
		return models.Session{}, a.challenge(r.Context(), shopParam, bearer, ErrMissingSessionToken)
	}

	claims, err := ParseSessionToken(tokenStr, a.apiKey, a.apiSecret)
	if err != nil {
		return models.Session{}, a.challenge(r.Context(), shopParam, bearer, err)
	}

	session, err := a.sessions.GetByShop(r.Context(), claims.Shop())
	if errors.Is(err, repo.ErrSessionNotFound) {
		return models.Session{}, &ChallengeError{Shop: claims.Shop(), Bearer: bearer, Err: err}
	}
	if err != nil {
		return models.Session{}, err
	}
	return session, nil
}

// challenge builds the error for a request without a usable token. Document
// loads for an installed shop are marked so they can fetch a new token
// instead of going through OAuth again.
func (a *ShopAuthenticator) challenge(ctx context.Context, shop string, bearer bool, cause error) error {
	c := &ChallengeError{Shop: shop, Bearer: bearer, Err: cause}
	if bearer || shop == "" {
		return c
	}

	_, err := a.sessions.GetByShop(ctx, shop)
	switch {
	case err == nil:
		c.Installed = true
	case !errors.Is(err, repo.ErrSessionNotFound):
		return err
	}
	return c
}

func sessionTokenFrom(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), true
	}
	return r.URL.Query().Get("id_token"), false
}

type contextKey string

const sessionKey = contextKey("shop_session")

func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok
}
