package scraper

import (
	"strings"

	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

// ParseStandings extracts the league table of a league page
func (p Parser) ParseStandings(html string) []league.StandingsRow {
	return p.standingsFrom(p.Document(html))
}

func (p Parser) standingsFrom(doc dom.Document) []league.StandingsRow {
	rows := make([]league.StandingsRow, 0)

	table, ok := Locate(doc, "table", idPrefix+"tableLabel")
	if !ok {
		return rows
	}

	for _, tr := range dataRows(table) {
		cells := tr.QueryAll("td")
		cols, ok := standingsLayouts[ClassifyRow(EntityStandings, len(cells))]
		if !ok {
			continue
		}

		team, info := splitQualifier(cellText(cells, cols.team))
		row := league.StandingsRow{
			Rank:           intOrZero(cellText(cells, cols.rank)),
			Team:           team,
			Info:           info,
			Games:          intOrZero(cellText(cells, cols.games)),
			Wins:           intOrZero(cellText(cells, cols.wins)),
			Draws:          intOrZero(cellText(cells, cols.draws)),
			Losses:         intOrZero(cellText(cells, cols.losses)),
			Goals:          cellText(cells, cols.goals),
			GoalDifference: intOrZero(strings.TrimPrefix(cellText(cells, cols.diff), "+")),
			Points:         intOrZero(cellText(cells, cols.points)),
		}
		if cols.logo >= 0 {
			if img, ok := cells[cols.logo].Query("img"); ok {
				src, _ := img.Attr("src")
				row.LogoURL = ResolveLogoURL(src, p.origin)
			}
		}
		if cols.form < len(cells) {
			row.Form = parseForm(cells[cols.form])
		}

		rows = append(rows, row)
	}

	return rows
}

// splitQualifier splits "Name - Qualifier" on the first " - "
func splitQualifier(text string) (team, info string) {
	team, info, _ = strings.Cut(text, " - ")
	return strings.TrimSpace(team), strings.TrimSpace(info)
}

// parseForm reads the recent results from image titles or, failing that, the cell text
func parseForm(cell dom.Element) []league.FormResult {
	var tokens []string
	for _, img := range cell.QueryAll("img") {
		if t, ok := img.Attr("title"); ok && strings.TrimSpace(t) != "" {
			tokens = append(tokens, t)
		} else if alt, ok := img.Attr("alt"); ok {
			tokens = append(tokens, alt)
		}
	}
	if len(tokens) == 0 {
		tokens = strings.Fields(dom.TrimmedText(cell))
	}

	var form []league.FormResult
	for _, tok := range tokens {
		switch strings.ToUpper(strings.TrimSpace(tok)) {
		case "S", "W":
			form = append(form, league.FormWin)
		case "U", "D":
			form = append(form, league.FormDraw)
		case "N", "L":
			form = append(form, league.FormLoss)
		}
	}
	return form
}
