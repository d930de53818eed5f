package scraper

import (
	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

// ParseScorers extracts the top-scorer list of a league page.
// A blank rank cell repeats the last explicit rank above it.
func (p Parser) ParseScorers(html string) []league.ScorerRow {
	return scorersFrom(p.Document(html))
}

func scorersFrom(doc dom.Document) []league.ScorerRow {
	scorers := make([]league.ScorerRow, 0)

	table, ok := Locate(doc, "scorer", idPrefix+"scorerLabel")
	if !ok {
		return scorers
	}

	lastRank := 0
	for _, row := range dataRows(table) {
		cells := row.QueryAll("td")
		cols, ok := scorerLayouts[ClassifyRow(EntityScorers, len(cells))]
		if !ok {
			continue
		}

		if rank, ok := leadingInt(cellText(cells, cols.rank)); ok {
			lastRank = rank
		}

		scorers = append(scorers, league.ScorerRow{
			Rank:  lastRank,
			Name:  cellText(cells, cols.name),
			Team:  cellText(cells, cols.team),
			Goals: intOrZero(cellText(cells, cols.goals)),
			Games: intOrZero(cellText(cells, cols.games)),
		})
	}

	return scorers
}
