// Package extract turns a parsed HTML tree into the structured page model:
// metadata, heading sections, and filtered links. Every function is a pure
// read over the tree; absence of expected content is normal, not an error.
package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Parse builds a node tree from raw markup. Malformed input yields a
// best-effort tree; only a truly unreadable document returns nil.
func Parse(raw []byte) *html.Node {
	node, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	return node
}

// findFirst returns the first element with the given tag in depth-first
// document order, or nil.
func findFirst(n *html.Node, tag string) *html.Node {
	var res *html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if res != nil {
			return
		}
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if res != nil {
				return
			}
		}
	}
	if n != nil {
		dfs(n)
	}
	return res
}

// forEach visits every element with the given tag in document order.
func forEach(n *html.Node, tag string, visit func(*html.Node)) {
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
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

// textContent concatenates all descendant text nodes.
func textContent(n *html.Node) string {
	var b strings.Builder
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	if n != nil {
		dfs(n)
	}
	return b.String()
}

// attr returns the value of the named attribute and whether it is present.
func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}
