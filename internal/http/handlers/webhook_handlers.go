package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/repo"
)

const maxWebhookBytes = 1 << 20

// AppUninstalledHandler godoc
// @Summary Forget a shop's session after the app is uninstalled
// @Tags webhooks
// @Accept json
// @Param X-Shopify-Hmac-Sha256 header string true "Base64 HMAC of the body"
// @Param X-Shopify-Shop-Domain header string true "Shop domain"
// @Success 200 "Session removed"
// @Failure 401 {string} string "Invalid signature"
// @Router /webhooks/app/uninstalled [post]
func AppUninstalledHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if !oauth.VerifyWebhookHMAC(body, r.Header.Get("X-Shopify-Hmac-Sha256")) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	shop := auth.NormalizeShop(r.Header.Get("X-Shopify-Shop-Domain"))
	if shop == "" {
		http.Error(w, "invalid shop", http.StatusBadRequest)
		return
	}

	if err := sessionRepo.Delete(r.Context(), shop); err != nil && !errors.Is(err, repo.ErrSessionNotFound) {
		logger.ErrorContext(r.Context(), "failed to delete session", slog.String("shop", shop), slog.Any("error", err))
		http.Error(w, "could not delete session", http.StatusInternalServerError)
		return
	}

	logger.InfoContext(r.Context(), "app uninstalled", slog.String("shop", shop))
	w.WriteHeader(http.StatusOK)
}
