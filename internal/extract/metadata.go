package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/gopagepdf/internal/page"
)

const (
	noTitle       = "No Title"
	noDescription = "No Description"
)

// Metadata extracts the page title and meta description. Missing values fall
// back to the defaults; this function never fails.
func Metadata(root *html.Node, pageURL string) page.Metadata {
	meta := page.Metadata{
		Title:       noTitle,
		URL:         pageURL,
		Description: noDescription,
	}
	if root == nil {
		return meta
	}
	if t := findFirst(root, "title"); t != nil {
		meta.Title = strings.TrimSpace(textContent(t))
	}
	if desc := metaDescription(root); desc != "" {
		meta.Description = desc
	}
	return meta
}

// metaDescription returns the trimmed content of the first
// <meta name="description"> element, or "".
func metaDescription(root *html.Node) string {
	var desc string
	forEach(root, "meta", func(n *html.Node) {
		if desc != "" {
			return
		}
		if name, _ := attr(n, "name"); !strings.EqualFold(name, "description") {
			return
		}
		content, _ := attr(n, "content")
		desc = strings.TrimSpace(content)
	})
	return desc
}
