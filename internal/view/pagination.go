package view

import (
	"net/url"

	"github.com/rogerio-castellano/shopify-products-admin/internal/catalog"
	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

type Pagination struct {
	Visible     bool
	HasPrevious bool
	HasNext     bool
	PreviousURL string
	NextURL     string
}

// NewPagination builds the previous/next links for the page described by
// info. Links resubmit the current query with cursor and direction replaced.
func NewPagination(info models.PageInfo, current *url.URL) Pagination {
	if !info.HasNextPage && !info.HasPreviousPage {
		return Pagination{}
	}

	p := Pagination{
		Visible:     true,
		HasPrevious: info.HasPreviousPage,
		HasNext:     info.HasNextPage,
	}
	if p.HasPrevious {
		p.PreviousURL = pageURL(current, info.StartCursor, catalog.DirectionPrevious)
	}
	if p.HasNext {
		p.NextURL = pageURL(current, info.EndCursor, catalog.DirectionNext)
	}
	return p
}

func pageURL(current *url.URL, cursor string, direction catalog.Direction) string {
	path := ""
	q := url.Values{}
	if current != nil {
		path = current.Path
		q = current.Query()
	}
	q.Set("cursor", cursor)
	q.Set("direction", string(direction))
	return path + "?" + q.Encode()
}
