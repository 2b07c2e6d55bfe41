package view

import (
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

const (
	TitleMaxLength = 25
	Ellipsis       = "…"
	NoPriceLabel   = "No price"
	CurrencyMarker = "$"
	DateLayout     = "Jan 2, 2006"

	ToneSuccess = "success"
	ToneSubdued = "subdued"
)

type ProductRow struct {
	ID           string
	Title        string
	FullTitle    string
	ThumbnailURL string
	ThumbnailAlt string
	Status       string
	StatusTone   string
	Price        string
	CreatedAt    string
	CreatedAgo   string
}

// HasThumbnail reports whether the row shows a product image rather than
// the placeholder icon.
func (r ProductRow) HasThumbnail() bool {
	return r.ThumbnailURL != ""
}

type ProductsPage struct {
	Title      string
	Empty      bool
	Rows       []ProductRow
	Pagination Pagination
}

// TruncateTitle shortens title to max characters followed by an ellipsis.
func TruncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + Ellipsis
}

func NewProductRow(p models.Product) ProductRow {
	row := ProductRow{
		ID:           p.ID,
		Title:        TruncateTitle(p.Title, TitleMaxLength),
		FullTitle:    p.Title,
		ThumbnailAlt: p.Title,
		Status:       p.Status,
		StatusTone:   statusTone(p.Status),
		Price:        priceLabel(p.Price),
	}
	if p.Image != nil {
		row.ThumbnailURL = p.Image.URL
		if p.Image.AltText != "" {
			row.ThumbnailAlt = p.Image.AltText
		}
	}
	row.CreatedAt, row.CreatedAgo = formatCreated(p.CreatedAt)
	return row
}

func statusTone(status string) string {
	if status == models.ProductStatusActive {
		return ToneSuccess
	}
	return ToneSubdued
}

func priceLabel(price *string) string {
	if price == nil || *price == "" {
		return NoPriceLabel
	}
	return CurrencyMarker + *price
}

func formatCreated(raw string) (string, string) {
	if raw == "" {
		return "", ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw, ""
	}
	return t.Format(DateLayout), humanize.Time(t)
}

// NewProductsPage maps a fetched page onto the table. Rows keep the order
// the catalog returned them in.
func NewProductsPage(page models.ProductsPage, current *url.URL) ProductsPage {
	vm := ProductsPage{Title: "Products"}
	if len(page.Products) == 0 {
		vm.Empty = true
		return vm
	}

	vm.Rows = make([]ProductRow, len(page.Products))
	for i, p := range page.Products {
		vm.Rows[i] = NewProductRow(p)
	}
	vm.Pagination = NewPagination(page.PageInfo, current)
	return vm
}
