package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/shopify-products-admin/internal/models"
)

// Catalog lists products of the shop a session belongs to.
type Catalog interface {
	ListProducts(ctx context.Context, session models.Session, d Directive) (models.ProductsPage, error)
}

type Config struct {
	APIVersion string
	// ShopURL maps a shop domain to its base URL. Defaults to https://{shop}.
	ShopURL func(shop string) string
}

// Client talks to the Shopify GraphQL Admin API. It issues exactly one
// request per call and never retries.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if config.ShopURL == nil {
		config.ShopURL = func(shop string) string { return "https://" + shop }
	}
	return &Client{config: config, httpClient: httpClient}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLErrors is returned when the response carries a top-level errors list.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ge := range e {
		msg := strings.TrimSpace(ge.Message)
		if msg == "" {
			continue
		}
		if len(ge.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, ge.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "shopify graphql errors: unknown graphql error"
	}
	return "shopify graphql errors: " + strings.Join(parts, "; ")
}

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("shopify request failed: %s", e.Status)
	}
	return fmt.Sprintf("shopify request failed: %s: %s", e.Status, e.Body)
}

// Unauthorized reports whether Shopify rejected the access token.
func (e *HTTPStatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func (c *Client) ListProducts(ctx context.Context, session models.Session, d Directive) (models.ProductsPage, error) {
	var data productsData
	if err := c.graphqlRequest(ctx, session, productsQuery, d.Variables(), &data); err != nil {
		return models.ProductsPage{}, err
	}

	page := models.ProductsPage{
		Products: make([]models.Product, 0, len(data.Products.Nodes)),
		PageInfo: models.PageInfo{
			HasNextPage:     data.Products.PageInfo.HasNextPage,
			HasPreviousPage: data.Products.PageInfo.HasPreviousPage,
			StartCursor:     deref(data.Products.PageInfo.StartCursor),
			EndCursor:       deref(data.Products.PageInfo.EndCursor),
		},
	}
	for _, n := range data.Products.Nodes {
		page.Products = append(page.Products, toProduct(n))
	}
	return page, nil
}

func toProduct(n productNode) models.Product {
	p := models.Product{
		ID:          n.ID,
		Title:       deref(n.Title),
		Description: deref(n.Description),
		Handle:      deref(n.Handle),
		Status:      deref(n.Status),
		CreatedAt:   deref(n.CreatedAt),
		UpdatedAt:   deref(n.UpdatedAt),
	}
	if n.Images != nil && len(n.Images.Nodes) > 0 && n.Images.Nodes[0].URL != "" {
		img := n.Images.Nodes[0]
		p.Image = &models.ProductImage{URL: img.URL, AltText: deref(img.AltText)}
	}
	if n.Variants != nil && len(n.Variants.Nodes) > 0 && n.Variants.Nodes[0].Price != nil {
		price := *n.Variants.Nodes[0].Price
		p.Price = &price
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (c *Client) endpoint(shop string) (string, error) {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return "", errors.New("shopify shop domain is empty")
	}
	if c.config.APIVersion == "" {
		return "", errors.New("shopify api version is empty")
	}
	base := strings.TrimRight(c.config.ShopURL(shop), "/")
	return base + "/admin/api/" + c.config.APIVersion + "/graphql.json", nil
}

func (c *Client) graphqlRequest(ctx context.Context, session models.Session, query string, variables map[string]any, out any) error {
	endpoint, err := c.endpoint(session.Shop)
	if err != nil {
		return err
	}

	body, err := json.Marshal(graphQLRequest{Query: strings.TrimSpace(query), Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", session.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read shopify response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(raw, &gqlResp); err != nil {
		return fmt.Errorf("failed to decode shopify response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return GraphQLErrors(gqlResp.Errors)
	}
	if len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return errors.New("shopify graphql response missing data")
	}
	return json.Unmarshal(gqlResp.Data, out)
}
