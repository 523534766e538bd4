package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/gopagepdf/internal/page"
)

// Links collects anchor destinations in document order, skipping script,
// mail, and phone schemes as well as bare fragment anchors. Root-relative
// destinations are resolved against baseURL; every other destination passes
// through unchanged, including protocol-relative and bare relative paths.
func Links(root *html.Node, baseURL string) []page.Link {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	var links []page.Link
	forEach(root, "a", func(n *html.Node) {
		href, ok := attr(n, "href")
		if !ok || href == "" || !keepLink(href) {
			return
		}
		text := strings.TrimSpace(textContent(n))
		if text == "" {
			text = href
		}
		links = append(links, page.Link{Text: text, URL: resolveHref(base, href)})
	})
	return links
}

func keepLink(href string) bool {
	return !strings.HasPrefix(href, "javascript:") &&
		!strings.HasPrefix(href, "mailto:") &&
		!strings.HasPrefix(href, "tel:") &&
		strings.TrimSpace(href) != "#"
}

// resolveHref makes root-relative destinations absolute. Anything not
// starting with "/" is returned verbatim; widening this to full relative
// resolution would change output for protocol-relative and bare paths.
func resolveHref(base *url.URL, href string) string {
	if base == nil || !strings.HasPrefix(href, "/") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
