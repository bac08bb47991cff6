package usecase

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/user/newsingest/internal/entity"
)

// IsArticleLink reports whether a URL points at a press-release
// document: final path segment starting with "P" and ending in ".htm".
func IsArticleLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	base := path.Base(u.Path)
	return strings.HasPrefix(base, "P") && strings.HasSuffix(base, ".htm")
}

// ExtractArticleLinks filters a listing page's internal links down to
// the article-URL pattern. Output is a deduplicated set, sorted for
// deterministic downstream ordering; input order is irrelevant.
func ExtractArticleLinks(page *entity.Page) []string {
	seen := make(map[string]struct{})
	for _, link := range page.Links {
		if IsArticleLink(link) {
			seen[link] = struct{}{}
		}
	}

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
