package scraper

import (
	"strings"

	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

const (
	DefaultOrigin     = "https://dsvdaten.dsv.de"
	DefaultModulePath = "/Modules/WB/"
)

// Parser decodes source pages into league records.
// The zero value is not useful; use NewParser.
type Parser struct {
	origin     string
	modulePath string
}

// NewParser creates a Parser resolving relative assets against origin.
// Empty arguments fall back to the public source.
func NewParser(origin, modulePath string) Parser {
	if origin == "" {
		origin = DefaultOrigin
	}
	if modulePath == "" {
		modulePath = DefaultModulePath
	}
	return Parser{
		origin:     strings.TrimRight(origin, "/"),
		modulePath: "/" + strings.Trim(modulePath, "/") + "/",
	}
}

// Origin returns the origin used for logo resolution
func (p Parser) Origin() string { return p.origin }

// ModulePath returns the server path navigation links are relative to
func (p Parser) ModulePath() string { return p.modulePath }

// Document sanitizes and parses a page
func (p Parser) Document(html string) dom.Document {
	return dom.Parse(Sanitize(html))
}

// ParseLeague extracts name, games, standings and scorers of a league page
func (p Parser) ParseLeague(html string) *league.League {
	doc := p.Document(html)
	standings := p.standingsFrom(doc)
	return &league.League{
		Name:      leagueNameFrom(doc),
		Games:     p.gamesFrom(doc, logosByTeam(standings)),
		Standings: standings,
		Scorers:   scorersFrom(doc),
	}
}

// ParseLeagueName returns the league title of a league page
func (p Parser) ParseLeagueName(html string) string {
	return leagueNameFrom(p.Document(html))
}

func leagueNameFrom(doc dom.Document) string {
	el, ok := doc.ByID(idPrefix + "headerLabel")
	if !ok {
		return ""
	}
	return dom.TrimmedText(el)
}

// relativeLink strips the absolute module prefix from a navigation href
func (p Parser) relativeLink(href string) string {
	href = strings.TrimSpace(href)
	if rest, ok := strings.CutPrefix(href, p.origin+p.modulePath); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(href, p.modulePath); ok {
		return rest
	}
	return href
}

// ResolvePath maps a navigation link to the server-relative path a Fetcher expects
func (p Parser) ResolvePath(link string) string {
	link = p.relativeLink(link)
	if strings.HasPrefix(link, "/") || strings.Contains(link, "://") {
		return link
	}
	return p.modulePath + link
}

func cellText(cells []dom.Element, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return dom.TrimmedText(cells[i])
}

// leadingInt reads an optional sign and the leading digits of s, ignoring
// whatever follows ("2/10" -> 2, "3." -> 3)
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func intOrZero(s string) int {
	n, _ := leadingInt(s)
	return n
}

var unplayedPlaceholders = []string{"mehr...", "mehr…", "more...", "more…"}

// normalizeResult maps the "more..." link text of unplayed games to league.NotPlayed
func normalizeResult(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return league.NotPlayed
	}
	for _, ph := range unplayedPlaceholders {
		if strings.EqualFold(text, ph) {
			return league.NotPlayed
		}
	}
	return text
}
