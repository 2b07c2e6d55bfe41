package handlers

import (
	"log/slog"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	"github.com/rogerio-castellano/shopify-products-admin/internal/repo"
)

var (
	productCatalog catalog.Catalog
	sessionRepo    repo.SessionRepository
	oauth          *auth.OAuth
	stateStore     auth.StateStore

	logger = slog.Default()
)

func SetCatalog(c catalog.Catalog) {
	productCatalog = c
}

func SetSessionRepo(r repo.SessionRepository) {
	sessionRepo = r
}

func SetOAuth(o *auth.OAuth, s auth.StateStore) {
	oauth = o
	stateStore = s
}

func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
