package view

import (
	"net/url"
	"strings"
)

// PlaceholderImage stands in for products without a stored image.
const PlaceholderImage = "assets/no_image.png"

// ImageURL resolves the address a stored product image is served from.
func ImageURL(baseURL, filename string) string {
	if filename == "" {
		return PlaceholderImage
	}
	return strings.TrimRight(baseURL, "/") + "/uploads/" + url.PathEscape(filename)
}
