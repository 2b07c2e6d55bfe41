package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

type OAuthConfig struct {
	APIKey    string
	APISecret string
	Scopes    string
	AppURL    string
	// ShopURL maps a shop domain to its base URL. Defaults to https://{shop}.
	ShopURL func(shop string) string
}

// OAuth implements Shopify's authorization code grant for offline tokens.
type OAuth struct {
	config     OAuthConfig
	httpClient *http.Client
}

func NewOAuth(config OAuthConfig, httpClient *http.Client) *OAuth {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if config.ShopURL == nil {
		config.ShopURL = func(shop string) string { return "https://" + shop }
	}
	return &OAuth{config: config, httpClient: httpClient}
}

func (o *OAuth) APIKey() string {
	return o.config.APIKey
}

func (o *OAuth) CallbackURL() string {
	return o.config.AppURL + "/auth/callback"
}

func (o *OAuth) AuthorizeURL(shop, state string) string {
	q := url.Values{}
	q.Set("client_id", o.config.APIKey)
	q.Set("scope", o.config.Scopes)
	q.Set("redirect_uri", o.CallbackURL())
	q.Set("state", state)
	return o.config.ShopURL(shop) + "/admin/oauth/authorize?" + q.Encode()
}

// EmbeddedAppURL is where the merchant lands inside the admin after install.
func (o *OAuth) EmbeddedAppURL(shop string) string {
	return "https://" + shop + "/admin/apps/" + url.PathEscape(o.config.APIKey)
}

// VerifyCallbackHMAC checks the hex hmac Shopify appends to redirect query
// strings. The message is every other parameter sorted by key.
func (o *OAuth) VerifyCallbackHMAC(query url.Values) bool {
	provided := query.Get("hmac")
	if provided == "" {
		return false
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(query[k], ","))
	}

	mac := hmac.New(sha256.New, []byte(o.config.APISecret))
	mac.Write([]byte(strings.Join(parts, "&")))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(provided)))
}

// VerifyWebhookHMAC checks the base64 X-Shopify-Hmac-Sha256 header against body.
func (o *OAuth) VerifyWebhookHMAC(body []byte, provided string) bool {
	if provided == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(o.config.APISecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(provided))
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}

var ErrTokenExchange = errors.New("token exchange failed")

func (o *OAuth) ExchangeCode(ctx context.Context, shop, code string) (AccessToken, error) {
	body, err := json.Marshal(map[string]string{
		"client_id":     o.config.APIKey,
		"client_secret": o.config.APISecret,
		"code":          code,
	})
	if err != nil {
		return AccessToken{}, err
	}

	endpoint := o.config.ShopURL(shop) + "/admin/oauth/access_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return AccessToken{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return AccessToken{}, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return AccessToken{}, fmt.Errorf("%w: %s: %s", ErrTokenExchange, resp.Status, strings.TrimSpace(string(raw)))
	}

	var tok AccessToken
	if err := json.Unmarshal(raw, &tok); err != nil || tok.AccessToken == "" {
		return AccessToken{}, fmt.Errorf("%w: invalid token response", ErrTokenExchange)
	}
	return tok, nil
}

func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
