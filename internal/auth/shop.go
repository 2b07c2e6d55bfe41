package auth

import (
	"regexp"
	"strings"
)

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

func IsValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

// NormalizeShop lowercases and trims a shop parameter. It returns "" when
// the result is not a myshopify.com domain.
func NormalizeShop(shop string) string {
	shop = strings.ToLower(strings.TrimSpace(shop))
	if !IsValidShopDomain(shop) {
		return ""
	}
	return shop
}
