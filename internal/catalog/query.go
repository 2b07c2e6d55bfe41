package catalog

const productsQuery = `
query Products($first: Int, $after: String, $last: Int, $before: String) {
	products(first: $first, after: $after, last: $last, before: $before) {
		nodes {
			id
			title
			description
			handle
			status
			createdAt
			updatedAt
			images(first: 1) {
				nodes { url altText }
			}
			variants(first: 1) {
				nodes { price }
			}
		}
		pageInfo {
			hasNextPage
			hasPreviousPage
			startCursor
			endCursor
		}
	}
}`

type productsData struct {
	Products struct {
		Nodes    []productNode `json:"nodes"`
		PageInfo pageInfoNode  `json:"pageInfo"`
	} `json:"products"`
}

type productNode struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Handle      *string `json:"handle"`
	Status      *string `json:"status"`
	CreatedAt   *string `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
	Images      *struct {
		Nodes []struct {
			URL     string  `json:"url"`
			AltText *string `json:"altText"`
		} `json:"nodes"`
	} `json:"images"`
	Variants *struct {
		Nodes []struct {
			Price *string `json:"price"`
		} `json:"nodes"`
	} `json:"variants"`
}

type pageInfoNode struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}
