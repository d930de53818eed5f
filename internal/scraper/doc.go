// Package scraper turns water polo league pages into league records.
//
// The pipeline is: Sanitize the raw markup, parse it into a dom.Document,
// Locate the section holding the wanted table (direct id first, then the
// label -> card-header -> next-sibling fallback used by the current page
// generation), classify every row by its cell count and decode it with the
// column offsets of its layout. Single-game pages are decoded field by field
// through the ContentSection__ identifier convention, and the game timeline is
// read as a sentinel-terminated indexed block.
//
// Extraction never fails: missing sections yield empty slices, missing fields
// yield zero values or nil optionals. Only fetching through a Fetcher returns
// errors.
package scraper
