// Package dom provides a small typed accessor over parsed HTML documents.
//
// Extraction code only ever sees the Element and Document interfaces: lookup by
// id, CSS selection, attribute access and text content. The implementation is
// backed by goquery, but nothing outside this package depends on a concrete
// node shape. Lookups never fail loudly: a missing node is reported through an
// ok flag or an empty slice.
package dom
