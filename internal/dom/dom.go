package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element is a read-only view of a single HTML element
type Element interface {
	// Query returns the first descendant matching the CSS selector
	Query(selector string) (Element, bool)
	// QueryAll returns every descendant matching the CSS selector, in document order
	QueryAll(selector string) []Element
	// Attr returns the value of the named attribute
	Attr(name string) (string, bool)
	// Text returns the combined text content of the element and its descendants
	Text() string
	Children() []Element
	Parent() (Element, bool)
	NextSibling() (Element, bool)
	HasClass(class string) bool
	Tag() string
}

// Document is a parsed HTML document with id lookup
type Document interface {
	Element
	// ByID returns the first element carrying the given id attribute
	ByID(id string) (Element, bool)
}

// node wraps a single-element goquery selection
type node struct {
	sel *goquery.Selection
}

type document struct {
	node
	ids map[string]*goquery.Selection
}

// Parse builds a Document from HTML text. Malformed markup is repaired by the
// HTML5 tokenizer; an unreadable input yields an empty document.
func Parse(html string) Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return FromGoquery(doc)
}

// FromGoquery wraps an already parsed goquery document
func FromGoquery(doc *goquery.Document) Document {
	d := &document{
		node: node{sel: doc.Selection},
		ids:  make(map[string]*goquery.Selection),
	}

	// First occurrence wins, as with getElementById
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if _, seen := d.ids[id]; !seen {
			d.ids[id] = s
		}
	})

	return d
}

func (d *document) ByID(id string) (Element, bool) {
	s, ok := d.ids[id]
	if !ok {
		return nil, false
	}
	return node{sel: s}, true
}

func (n node) Query(selector string) (Element, bool) {
	s := n.sel.Find(selector).First()
	if s.Length() == 0 {
		return nil, false
	}
	return node{sel: s}, true
}

func (n node) QueryAll(selector string) []Element {
	return wrap(n.sel.Find(selector))
}

func (n node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n node) Text() string {
	return n.sel.Text()
}

func (n node) Children() []Element {
	return wrap(n.sel.Children())
}

func (n node) Parent() (Element, bool) {
	p := n.sel.Parent()
	if p.Length() == 0 || goquery.NodeName(p) == "#document" {
		return nil, false
	}
	return node{sel: p}, true
}

func (n node) NextSibling() (Element, bool) {
	s := n.sel.Next()
	if s.Length() == 0 {
		return nil, false
	}
	return node{sel: s}, true
}

func (n node) HasClass(class string) bool {
	return n.sel.HasClass(class)
}

func (n node) Tag() string {
	return goquery.NodeName(n.sel)
}

func wrap(s *goquery.Selection) []Element {
	out := make([]Element, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		out = append(out, node{sel: item})
	})
	return out
}

// TrimmedText returns the element text with surrounding whitespace removed,
// including non-breaking spaces
func TrimmedText(e Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(e.Text(), "\u00a0", " "))
}
