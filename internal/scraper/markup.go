package scraper

import "regexp"

var (
	nobrPattern        = regexp.MustCompile(`(?i)</?nobr\s*>`)
	targetBlankPattern = regexp.MustCompile(`(?i)\s*target\s*=\s*["']?_blank["']?`)
)

// Sanitize strips the decorative <nobr> wrappers the source puts around numbers
// and drops target=_blank attributes before the markup is parsed
func Sanitize(html string) string {
	html = nobrPattern.ReplaceAllString(html, "")
	return targetBlankPattern.ReplaceAllString(html, "")
}
