package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string.
// This is useful for creating consistent, safe keys for Redis.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// NewsIDFromURL derives the stable article identifier from a URL: the
// final path segment with its extension stripped. For
// ".../gia/general/202601/01/P2026010100123.htm" it returns
// "P2026010100123". This is the natural key used for deduplication.
func NewsIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to plain string handling for unparsable input.
		parts := strings.Split(rawURL, "/")
		last := parts[len(parts)-1]
		return strings.TrimSuffix(last, path.Ext(last))
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
