package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperifyio/gopagepdf/internal/page"
)

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func isHeading(n *html.Node) bool {
	return n.Type == html.ElementNode && headingTags[strings.ToLower(n.Data)]
}

// Sections returns one Section per heading element in document order. Body
// lines come from the heading's following siblings only: paragraphs give one
// line each, list elements give one "- " line per item, everything else is
// skipped. The scan stops at the next heading sibling or when siblings run
// out, so content nested inside a later wrapper element is not associated.
func Sections(root *html.Node) []page.Section {
	var sections []page.Section
	forEachHeading(root, func(h *html.Node) {
		sections = append(sections, page.Section{
			Heading: strings.TrimSpace(textContent(h)),
			Body:    siblingBody(h),
		})
	})
	return sections
}

// forEachHeading visits every h1..h6 element in document order.
func forEachHeading(n *html.Node, visit func(*html.Node)) {
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if isHeading(cur) {
			visit(cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	if n != nil {
		dfs(n)
	}
}

// siblingBody walks the siblings that follow h, collecting body lines until
// the next heading sibling terminates the scan.
func siblingBody(h *html.Node) []string {
	var body []string
	for n := h.NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		if isHeading(n) {
			break
		}
		switch strings.ToLower(n.Data) {
		case "p":
			body = append(body, strings.TrimSpace(textContent(n)))
		case "ul", "ol":
			forEach(n, "li", func(li *html.Node) {
				body = append(body, "- "+strings.TrimSpace(textContent(li)))
			})
		}
	}
	return body
}
