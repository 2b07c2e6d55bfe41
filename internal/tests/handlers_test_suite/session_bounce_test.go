package handlers_test_suite

import (
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

var nextLinkPattern = regexp.MustCompile(`href="([^"]+)" rel="next"`)

func TestProductsPage_NextLinkWithExpiredToken(t *testing.T) {
	r := setupRouter(t, "")
	installShop(t)
	fake.page = models.ProductsPage{
		Products: productsFixture(10),
		PageInfo: models.PageInfo{HasNextPage: true, StartCursor: "first", EndCursor: "abc"},
	}

	w := getPage(r, t, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	m := nextLinkPattern.FindStringSubmatch(w.Body.String())
	if m == nil {
		t.Fatal("expected a next link")
	}
	next, err := url.Parse(html.UnescapeString(m[1]))
	if err != nil {
		t.Fatalf("invalid next link: %v", err)
	}

	// The token carried by the link has expired by the time it is followed.
	expired, err := auth.SignSessionToken(testShop, testAPIKey, testAPISecret, -time.Minute)
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	q := next.Query()
	q.Set("id_token", expired)
	next.RawQuery = q.Encode()

	w = serve(r, httptest.NewRequest(http.MethodGet, next.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected the session bounce page, got %d (Location %q)", w.Code, w.Header().Get("Location"))
	}
	if !strings.Contains(w.Body.String(), `data-testid="session-bounce"`) {
		t.Fatal("expected the session bounce page")
	}
	if len(fake.calls()) != 1 {
		t.Errorf("catalog must not be called with an expired token, got %d calls", len(fake.calls()))
	}

	// App Bridge reloads the same URL with a fresh token.
	q.Set("id_token", sessionToken(t))
	next.RawQuery = q.Encode()
	w = serve(r, httptest.NewRequest(http.MethodGet, next.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK after refresh, got %d", w.Code)
	}
	calls := fake.calls()
	if len(calls) != 2 {
		t.Fatalf("expected a second catalog call, got %d", len(calls))
	}
	if calls[1].Mode != catalog.FirstAfter || calls[1].Cursor != "abc" {
		t.Errorf("expected first-after abc, got %s %q", calls[1].Mode, calls[1].Cursor)
	}
}

func TestProductsPage_EmbeddedLoadForUnknownShopLeavesIframe(t *testing.T) {
	r := setupRouter(t, "")

	w := getPage(r, t, "embedded=1")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `data-testid="exit-iframe"`) {
		t.Error("expected the exit-iframe page")
	}
	if !strings.Contains(body, "auth?shop="+testShop) {
		t.Error("expected the OAuth start as target")
	}
	if len(fake.calls()) != 0 {
		t.Error("catalog must not be called without a session")
	}
}
