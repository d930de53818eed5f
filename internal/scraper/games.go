package scraper

import (
	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

// ParseGames extracts the schedule of a league page
func (p Parser) ParseGames(html string) []league.GameSummary {
	doc := p.Document(html)
	return p.gamesFrom(doc, logosByTeam(p.standingsFrom(doc)))
}

func (p Parser) gamesFrom(doc dom.Document, logos map[string]string) []league.GameSummary {
	games := make([]league.GameSummary, 0)

	table, ok := Locate(doc, "games", idPrefix+"roundLabel")
	if !ok {
		return games
	}

	for _, row := range dataRows(table) {
		cells := row.QueryAll("td")
		cols, ok := gameLayouts[ClassifyRow(EntityGames, len(cells))]
		if !ok {
			continue
		}

		g := league.GameSummary{
			Start:  cellText(cells, cols.start),
			Home:   cellText(cells, cols.home),
			Guest:  cellText(cells, cols.guest),
			Venue:  cellText(cells, cols.venue),
			Result: normalizeResult(cellText(cells, cols.result)),
		}
		if dt, ok := league.ParseDateTime(g.Start); ok {
			g.StartAt = &dt
		}
		g.HomeLogo = logos[g.Home]
		g.GuestLogo = logos[g.Guest]

		if a, ok := cells[cols.result].Query("a"); ok {
			if href, ok := a.Attr("href"); ok {
				g.Link = p.relativeLink(href)
			}
		}

		games = append(games, g)
	}

	return games
}

func logosByTeam(standings []league.StandingsRow) map[string]string {
	logos := make(map[string]string, len(standings))
	for _, row := range standings {
		if row.LogoURL != "" {
			logos[row.Team] = row.LogoURL
		}
	}
	return logos
}
