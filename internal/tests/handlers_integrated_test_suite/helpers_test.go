package handlers_integrated_test_suite

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	api "github.com/rogerio-castellano/shopify-products-admin/internal/http"
	handler "github.com/rogerio-castellano/shopify-products-admin/internal/http/handlers"
)

const (
	testShop      = "integration-test.myshopify.com"
	testAPIKey    = "api-key"
	testAPISecret = "api-secret"
)

// fakeShopify serves the token exchange and the GraphQL endpoint for testShop.
func fakeShopify(t *testing.T, accessToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":%q,"scope":"read_products"}`, accessToken)
	})
	mux.HandleFunc("/admin/api/2025-01/graphql.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != accessToken {
			http.Error(w, `{"errors":"[API] Invalid API key or access token"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"products":{"nodes":[{"id":"gid://shopify/Product/1","title":"Integration snowboard","status":"ACTIVE","createdAt":"2024-03-05T10:00:00Z","images":{"nodes":[]},"variants":{"nodes":[{"price":"10.00"}]}}],"pageInfo":{"hasNextPage":false,"hasPreviousPage":false,"startCursor":"a","endCursor":"a"}}}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupRouter(t *testing.T, shopURL string) http.Handler {
	t.Helper()
	if database == nil {
		t.Skip("DATABASE_URL not set")
	}
	t.Cleanup(clearSession)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shopURLFn := func(string) string { return shopURL }

	handler.SetLogger(logger)
	handler.SetSessionRepo(sessionRepo)
	handler.SetOAuth(auth.NewOAuth(auth.OAuthConfig{
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
		Scopes:    "read_products",
		AppURL:    "https://app.example.com",
		ShopURL:   shopURLFn,
	}, nil), auth.NewMemoryStateStore())
	handler.SetCatalog(catalog.NewClient(catalog.Config{APIVersion: "2025-01", ShopURL: shopURLFn}, nil))

	return api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Authenticator: auth.NewShopAuthenticator(testAPIKey, testAPISecret, sessionRepo),
		APIKey:        testAPIKey,
	})
}

func clearSession() {
	_, _ = database.Exec("DELETE FROM shopify_sessions WHERE shop = $1", testShop)
}

func sessionToken(t *testing.T) string {
	t.Helper()
	tok, err := auth.SignSessionToken(testShop, testAPIKey, testAPISecret, time.Minute)
	if err != nil {
		t.Fatalf("could not sign session token: %v", err)
	}
	return tok
}
