package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
	"github.com/rogerio-castellano/shopify-products-admin/internal/view"
)

func fetchPage(r *http.Request) (models.ProductsPage, catalog.Directive, error) {
	q := r.URL.Query()
	d := catalog.NewDirective(q.Get("cursor"), q.Get("direction"))

	session, ok := currentSession(r)
	if !ok {
		return models.ProductsPage{}, d, errNoSession
	}

	page, err := productCatalog.ListProducts(r.Context(), session, d)
	return page, d, err
}

// ProductsPageHandler renders the products table for the authenticated shop.
// Catalog failures are not handled here beyond a generic error page.
func ProductsPageHandler(w http.ResponseWriter, r *http.Request) {
	page, d, err := fetchPage(r)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list products",
			slog.String("mode", d.Mode.String()),
			slog.Any("error", err),
		)
		if err := view.RenderError(w, http.StatusInternalServerError); err != nil {
			logger.ErrorContext(r.Context(), "failed to render error page", slog.Any("error", err))
		}
		return
	}

	if err := view.RenderProducts(w, view.NewProductsPage(page, r.URL)); err != nil {
		logger.ErrorContext(r.Context(), "failed to render products page", slog.Any("error", err))
	}
}

// GetProductsHandler godoc
// @Summary List one page of products
// @Description Fetches ten products from the shop's catalog using cursor pagination
// @Tags products
// @Produce json
// @Security SessionToken
// @Param cursor query string false "Opaque cursor from a previous pageInfo"
// @Param direction query string false "next (default) or previous" Enums(next, previous)
// @Success 200 {object} ProductsPageResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 502 {object} ErrorResponse
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	page, d, err := fetchPage(r)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list products",
			slog.String("mode", d.Mode.String()),
			slog.Any("error", err),
		)
		_ = writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "could not fetch products"})
		return
	}

	resp := ProductsPageResponse{
		Products: make([]ProductResponse, len(page.Products)),
		PageInfo: PageInfoResponse{
			HasNextPage:     page.PageInfo.HasNextPage,
			HasPreviousPage: page.PageInfo.HasPreviousPage,
			StartCursor:     page.PageInfo.StartCursor,
			EndCursor:       page.PageInfo.EndCursor,
		},
	}
	for i, p := range page.Products {
		resp.Products[i] = ProductResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Handle:      p.Handle,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
			Price:       p.Price,
		}
		if p.Image != nil {
			resp.Products[i].Image = &ProductImageResponse{URL: p.Image.URL, AltText: p.Image.AltText}
		}
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.ErrorContext(r.Context(), "failed to write JSON response", slog.Any("error", err))
	}
}
