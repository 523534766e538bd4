// Package page defines the structured representation of a scraped web page
// that flows from the extractors into the PDF renderer.
package page

// Metadata holds the page-level fields rendered in the document header.
// Absent values are filled with defaults at extraction time, never left empty.
type Metadata struct {
	Title       string
	URL         string
	Description string
}

// Section is one heading together with the body lines that follow it in the
// markup, up to the next heading.
type Section struct {
	Heading string
	// Body holds one entry per paragraph or list item, in document order.
	// Empty when the heading has no following content siblings.
	Body []string
}

// Link is a filtered hyperlink. URL is either the original destination or,
// for root-relative destinations, the destination resolved against the page.
type Link struct {
	Text string
	URL  string
}

// TabEntry is the label and revealed panel text of one activated tab control.
type TabEntry struct {
	Label   string
	Content string
}

// Document is the assembled render input. It is built once per run and
// handed read-only to the renderer.
type Document struct {
	Meta     Metadata
	Sections []Section
	Links    []Link
	Tabs     []TabEntry
}
