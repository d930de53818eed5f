package scraper

import "github.com/wbliga/wb-liga/internal/dom"

// HeaderBlockClass marks the card header that precedes a table's body block
const HeaderBlockClass = "card-header"

// Locate finds the container of an entity table. The element with primaryID
// is returned when present. Otherwise the label element fallbackLabelID is
// followed up to its enclosing header block, and the first table inside the
// header's next sibling is returned. A false result means "no rows".
func Locate(doc dom.Document, primaryID, fallbackLabelID string) (dom.Element, bool) {
	if doc == nil {
		return nil, false
	}
	if el, ok := doc.ByID(primaryID); ok {
		return el, true
	}
	if fallbackLabelID == "" {
		return nil, false
	}

	label, ok := doc.ByID(fallbackLabelID)
	if !ok {
		return nil, false
	}

	for el, ok := label.Parent(); ok; el, ok = el.Parent() {
		if !el.HasClass(HeaderBlockClass) {
			continue
		}
		body, ok := el.NextSibling()
		if !ok {
			return nil, false
		}
		return body.Query("table")
	}
	return nil, false
}

// dataRows returns the rows of a located table without the header row
func dataRows(table dom.Element) []dom.Element {
	rows := table.QueryAll("tr")
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
