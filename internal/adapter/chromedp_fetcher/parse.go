package chromedp_fetcher

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/pkg/utils"
)

// ParsePage turns rendered HTML into a Page: document title, the text
// of the target elements with paragraph boundaries preserved, and the
// page's internal links absolutized against the page URL. A page whose
// target elements render empty is reported as ErrNoContent.
func ParsePage(pageURL, html string, target repository.FetchTarget) (*entity.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Join(repository.ErrNavigationFailed, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Join(repository.ErrNavigationFailed, err)
	}

	doc.Find("script, style").Remove()

	page := &entity.Page{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		HTML:  html,
		Text:  targetText(doc, target.Selectors),
		Links: internalLinks(doc, base),
	}
	if page.Text == "" {
		return page, repository.ErrNoContent
	}
	return page, nil
}

// targetText collects the rendered text of the target elements,
// separating paragraphs with blank lines so the downstream splitter can
// respect them.
func targetText(doc *goquery.Document, selectors []string) string {
	var blocks []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			paragraphs := sel.Find("p")
			if paragraphs.Length() == 0 {
				if text := normalize(sel.Text()); text != "" {
					blocks = append(blocks, text)
				}
				return
			}
			paragraphs.Each(func(_ int, p *goquery.Selection) {
				if text := normalize(p.Text()); text != "" {
					blocks = append(blocks, text)
				}
			})
		})
	}
	return strings.Join(blocks, "\n\n")
}

// internalLinks returns the absolute form of every same-host anchor.
func internalLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		abs, err := utils.ToAbsoluteURL(base, href)
		if err != nil {
			return
		}
		absURL, err := url.Parse(abs)
		if err != nil || absURL.Host != base.Host {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})
	return links
}

// normalize keeps line structure out of a paragraph: interior runs of
// whitespace collapse to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
