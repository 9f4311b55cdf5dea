package content

import "time"

// Item kinds. A section index comes from an _index.md file and represents a
// directory of pages; everything else is a page.
const (
	KindPage    = "page"
	KindSection = "section"
)

// Item is one scanned content document. It is built once at scan time and
// never mutated afterwards.
type Item struct {
	// Path is the source path relative to the content root, e.g.
	// "posts/hello.md".
	Path string
	// Slug is the URL path of the rendered document without leading or
	// trailing slashes, e.g. "posts/hello". Empty for the root section.
	Slug string
	Kind string

	Title       string
	Description string
	Date        time.Time
	Draft       bool
	// Taxonomies maps a taxonomy name to the ordered terms assigned in
	// front-matter.
	Taxonomies map[string][]string
	Extra      map[string]interface{}

	// Body is the raw markdown following the front-matter block.
	Body string
}

// Dated reports whether the item carries a publication date.
func (i *Item) Dated() bool {
	return !i.Date.IsZero()
}

// Terms returns the ordered terms assigned for one taxonomy, or nil.
func (i *Item) Terms(taxonomy string) []string {
	return i.Taxonomies[taxonomy]
}
