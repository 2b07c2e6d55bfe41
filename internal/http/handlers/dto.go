package handlers

type ProductImageResponse struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type ProductResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Handle      string                `json:"handle"`
	Status      string                `json:"status"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
	Image       *ProductImageResponse `json:"image"`
	Price       *string               `json:"price"`
}

type PageInfoResponse struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

type ProductsPageResponse struct {
	Products []ProductResponse `json:"products"`
	PageInfo PageInfoResponse  `json:"pageInfo"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
