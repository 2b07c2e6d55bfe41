package handlers_test_suite

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	api "github.com/rogerio-castellano/shopify-products-admin/internal/http"
	handler "github.com/rogerio-castellano/shopify-products-admin/internal/http/handlers"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
	"github.com/rogerio-castellano/shopify-products-admin/internal/repo"
)

const (
	testShop      = "demo.myshopify.com"
	testAPIKey    = "api-key"
	testAPISecret = "api-secret"
	testToken     = "shpat_test"
)

var (
	sessionRepo *repo.InMemorySessionRepository
	stateStore  *auth.MemoryStateStore
	fake        *fakeCatalog
)

type fakeCatalog struct {
	mu         sync.Mutex
	page       models.ProductsPage
	err        error
	directives []catalog.Directive
	sessions   []models.Session
}

func (f *fakeCatalog) ListProducts(_ context.Context, s models.Session, d catalog.Directive) (models.ProductsPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directives = append(f.directives, d)
	f.sessions = append(f.sessions, s)
	return f.page, f.err
}

func (f *fakeCatalog) calls() []catalog.Directive {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Directive(nil), f.directives...)
}

// setupRouter wires in-memory collaborators and returns a fresh router.
// shopURL points OAuth at a fake shop; it may be empty.
func setupRouter(t *testing.T, shopURL string) http.Handler {
	t.Helper()

	sessionRepo = repo.NewInMemorySessionRepository()
	t.Cleanup(sessionRepo.Clear)
	stateStore = auth.NewMemoryStateStore()
	fake = &fakeCatalog{}

	oauthCfg := auth.OAuthConfig{
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
		Scopes:    "read_products",
		AppURL:    "https://app.example.com",
	}
	if shopURL != "" {
		oauthCfg.ShopURL = func(string) string { return shopURL }
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler.SetLogger(logger)
	handler.SetCatalog(fake)
	handler.SetSessionRepo(sessionRepo)
	oauth := auth.NewOAuth(oauthCfg, nil)
	handler.SetOAuth(oauth, stateStore)

	return api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Authenticator: auth.NewShopAuthenticator(testAPIKey, testAPISecret, sessionRepo),
		APIKey:        oauth.APIKey(),
	})
}

func installShop(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()
	err := sessionRepo.Save(context.Background(), models.Session{
		Shop:        testShop,
		AccessToken: testToken,
		Scope:       "read_products",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("could not save session: %v", err)
	}
}

func sessionToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.SignSessionToken(testShop, testAPIKey, testAPISecret, time.Minute)
	if err != nil {
		t.Fatalf("could not sign session token: %v", err)
	}
	return tok
}

func getPage(r http.Handler, t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	q, _ := url.ParseQuery(query)
	q.Set("shop", testShop)
	q.Set("id_token", sessionToken(t))

	req := httptest.NewRequest(http.MethodGet, "/app/products?"+q.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getAPI(r http.Handler, t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/products?"+query, nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signQuery(q url.Values) {
	keys := make([]string, 0, len(q))
	for k := range q {
		if k != "hmac" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(q[k], ","))
	}
	mac := hmac.New(sha256.New, []byte(testAPISecret))
	mac.Write([]byte(strings.Join(parts, "&")))
	q.Set("hmac", hex.EncodeToString(mac.Sum(nil)))
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testAPISecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func strPtr(s string) *string { return &s }

func productsFixture(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:        fmt.Sprintf("gid://shopify/Product/%d", i+1),
			Title:     fmt.Sprintf("Product %d", i+1),
			Status:    models.ProductStatusActive,
			CreatedAt: "2024-03-05T10:00:00Z",
			Image:     &models.ProductImage{URL: fmt.Sprintf("https://cdn.example.com/%d.png", i+1), AltText: "image"},
			Price:     strPtr("19.99"),
		}
	}
	return products
}

func newBearerRequest(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
