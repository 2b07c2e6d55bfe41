package models

// Product is a read-only projection of a Shopify catalog product.
// Every field except ID may be missing in the remote response.
type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Handle      string        `json:"handle"`
	Status      string        `json:"status"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	UpdatedAt   string        `json:"updatedAt,omitempty"`
	Image       *ProductImage `json:"image,omitempty"`
	Price       *string       `json:"price,omitempty"`
}

type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// ProductStatusActive is the only status rendered with success styling.
const ProductStatusActive = "ACTIVE"

// PageInfo cursors are opaque and forwarded verbatim.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
}

type ProductsPage struct {
	Products []Product `json:"nodes"`
	PageInfo PageInfo  `json:"pageInfo"`
}
