package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	rl "github.com/rogerio-castellano/shopify-products-admin/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

type stubAuthenticator struct {
	session models.Session
	err     error
}

func (s stubAuthenticator) Authenticate(*http.Request) (models.Session, error) {
	return s.session, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	})

	t.Run("honoured", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	})
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(Logger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/products", nil))

	out := buf.String()
	assert.Contains(t, out, `"msg":"http_request"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"path":"/app/products"`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(rl.New(0.001, 2))(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequireSession(t *testing.T) {
	session := models.Session{Shop: "demo.myshopify.com", AccessToken: "shpat"}

	tests := []struct {
		name         string
		target       string
		auth         stubAuthenticator
		expectCode   int
		expectHeader string
		expectLoc    string
		expectBody   string
	}{
		{
			name:       "authenticated",
			auth:       stubAuthenticator{session: session},
			expectCode: http.StatusOK,
		},
		{
			name:         "bearer challenge",
			auth:         stubAuthenticator{err: &auth.ChallengeError{Shop: "demo.myshopify.com", Bearer: true, Err: auth.ErrInvalidSessionToken}},
			expectCode:   http.StatusUnauthorized,
			expectHeader: "1",
		},
		{
			name:       "document challenge with shop",
			auth:       stubAuthenticator{err: &auth.ChallengeError{Shop: "demo.myshopify.com", Err: auth.ErrMissingSessionToken}},
			expectCode: http.StatusFound,
			expectLoc:  "/auth?shop=demo.myshopify.com",
		},
		{
			name:       "installed shop with stale token",
			auth:       stubAuthenticator{err: &auth.ChallengeError{Shop: "demo.myshopify.com", Installed: true, Err: auth.ErrInvalidSessionToken}},
			expectCode: http.StatusOK,
			expectBody: `data-testid="session-bounce"`,
		},
		{
			name:       "embedded load for unknown shop leaves the iframe",
			target:     "/app/products?embedded=1&shop=demo.myshopify.com",
			auth:       stubAuthenticator{err: &auth.ChallengeError{Shop: "demo.myshopify.com", Err: auth.ErrMissingSessionToken}},
			expectCode: http.StatusOK,
			expectBody: `data-testid="exit-iframe"`,
		},
		{
			name:       "document challenge without shop",
			auth:       stubAuthenticator{err: &auth.ChallengeError{Err: auth.ErrMissingSessionToken}},
			expectCode: http.StatusUnauthorized,
		},
		{
			name:       "storage failure",
			auth:       stubAuthenticator{err: errors.New("db down")},
			expectCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.Session
			target := tt.target
			if target == "" {
				target = "/app/products"
			}
			h := RequireSession(tt.auth, "api-key", discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s, ok := auth.SessionFromContext(r.Context())
				require.True(t, ok)
				got = s
			}))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, tt.expectCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectBody)
			assert.Equal(t, tt.expectHeader, w.Header().Get(HeaderRetryInvalidSession))
			assert.Equal(t, tt.expectLoc, w.Header().Get("Location"))
			if tt.expectCode == http.StatusOK && tt.expectBody == "" {
				assert.Equal(t, session, got)
			}
		})
	}
}

func TestNewRouter_RootRedirectsToProducts(t *testing.T) {
	r := NewRouter(RouterConfig{Logger: discardLogger(), Authenticator: stubAuthenticator{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?shop=demo.myshopify.com", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/app/products?shop=demo.myshopify.com", w.Header().Get("Location"))
}
