package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

// InstallHandler godoc
// @Summary Start OAuth for a shop
// @Tags auth
// @Param shop query string true "Shop domain, e.g. demo.myshopify.com"
// @Success 302 "Redirect to the Shopify consent screen"
// @Failure 400 {string} string "Invalid shop"
// @Router /auth [get]
func InstallHandler(w http.ResponseWriter, r *http.Request) {
	shop := auth.NormalizeShop(r.URL.Query().Get("shop"))
	if shop == "" {
		http.Error(w, "invalid shop", http.StatusBadRequest)
		return
	}

	state, err := auth.NewState()
	if err != nil {
		http.Error(w, "could not start authentication", http.StatusInternalServerError)
		return
	}
	if err := stateStore.Put(r.Context(), state, shop); err != nil {
		logger.ErrorContext(r.Context(), "failed to store oauth state", slog.String("shop", shop), slog.Any("error", err))
		http.Error(w, "could not start authentication", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, oauth.AuthorizeURL(shop, state), http.StatusFound)
}

// CallbackHandler godoc
// @Summary Complete OAuth and store the shop's offline session
// @Tags auth
// @Param shop query string true "Shop domain"
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by /auth"
// @Param hmac query string true "Request signature"
// @Success 302 "Redirect into the embedded app"
// @Failure 400 {string} string "Invalid callback"
// @Failure 502 {string} string "Token exchange failed"
// @Router /auth/callback [get]
func CallbackHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	shop := auth.NormalizeShop(q.Get("shop"))
	code := q.Get("code")
	state := q.Get("state")

	if shop == "" || code == "" || state == "" {
		http.Error(w, "missing required oauth params", http.StatusBadRequest)
		return
	}
	if !oauth.VerifyCallbackHMAC(q) {
		http.Error(w, "invalid hmac", http.StatusBadRequest)
		return
	}

	stateShop, err := stateStore.Consume(r.Context(), state)
	if err != nil {
		if errors.Is(err, auth.ErrStateNotFound) {
			http.Error(w, "invalid or expired state", http.StatusBadRequest)
			return
		}
		logger.ErrorContext(r.Context(), "failed to read oauth state", slog.Any("error", err))
		http.Error(w, "could not complete authentication", http.StatusInternalServerError)
		return
	}
	if stateShop != shop {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	tok, err := oauth.ExchangeCode(r.Context(), shop, code)
	if err != nil {
		logger.ErrorContext(r.Context(), "token exchange failed", slog.String("shop", shop), slog.Any("error", err))
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}

	now := time.Now().UTC()
	session := models.Session{
		Shop:        shop,
		AccessToken: tok.AccessToken,
		Scope:       tok.Scope,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := sessionRepo.Save(r.Context(), session); err != nil {
		logger.ErrorContext(r.Context(), "failed to save session", slog.String("shop", shop), slog.Any("error", err))
		http.Error(w, "could not save session", http.StatusInternalServerError)
		return
	}

	logger.InfoContext(r.Context(), "shop authenticated", slog.String("shop", shop), slog.String("scope", tok.Scope))
	http.Redirect(w, r, oauth.EmbeddedAppURL(shop), http.StatusFound)
}
