// Package urlutil canonicalizes candidate URLs before they are probed and stored.
package urlutil

import (
	"strings"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
)

// Supported schemes.
const (
	HTTP  = "http"
	HTTPS = "https"
)

const schemeSeparator = "://"

// DefaultScheme is prepended to URLs submitted without one.
const DefaultScheme = HTTP

// Normalize returns raw as a scheme-qualified URL. URLs that already start
// with http:// or https:// are returned unchanged.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", customerrors.ErrEmptyURL
	}
	if HasScheme(raw) {
		return raw, nil
	}
	return DefaultScheme + schemeSeparator + raw, nil
}

// HasScheme reports whether url starts with a recognized scheme prefix.
func HasScheme(url string) bool {
	return Scheme(url) != ""
}

// Scheme returns the recognized scheme of url, or "" when it has none.
func Scheme(url string) string {
	switch {
	case strings.HasPrefix(url, HTTPS+schemeSeparator):
		return HTTPS
	case strings.HasPrefix(url, HTTP+schemeSeparator):
		return HTTP
	default:
		return ""
	}
}

// ChangeProtocol swaps the scheme token of url for protocol and leaves the
// remainder untouched. A URL without a recognized scheme gets protocol prepended.
func ChangeProtocol(url, protocol string) string {
	if current := Scheme(url); current != "" {
		url = url[len(current)+len(schemeSeparator):]
	}
	return protocol + schemeSeparator + url
}

// Alternate returns the other supported scheme.
func Alternate(scheme string) string {
	if scheme == HTTPS {
		return HTTP
	}
	return HTTPS
}
