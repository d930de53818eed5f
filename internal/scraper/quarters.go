package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

const quarters = 4

var (
	segmentHeaderPattern = regexp.MustCompile(`(?i)viertel|abschnitt|periods`)
	quarterBreakdown     = regexp.MustCompile(`\((\d+):(\d+),\s*(\d+):(\d+),\s*(\d+):(\d+),\s*(\d+):(\d+)\)`)
)

// ParseQuarterScores reads the per-quarter score of a game page
func (p Parser) ParseQuarterScores(html string) []league.QuarterScore {
	doc := p.Document(html)
	return quarterScoresFrom(doc, detailFields{doc: doc}.text("scoring"))
}

// quarterScoresFrom tries the segment-score table, the legacy scoreboard and
// the breakdown inside the final score, in that order. The first source
// yielding any quarter wins.
func quarterScoresFrom(doc dom.Document, finalScore string) []league.QuarterScore {
	if qs := segmentScores(doc); len(qs) > 0 {
		return qs
	}
	if qs := scoreboardScores(doc); len(qs) > 0 {
		return qs
	}
	if qs := finalScoreBreakdown(finalScore); len(qs) > 0 {
		return qs
	}
	return make([]league.QuarterScore, 0)
}

// segmentScores reads a table whose header names a hyphen-joined
// per-quarter column ("8-8-4-7") with the home row first
func segmentScores(doc dom.Document) []league.QuarterScore {
	for _, table := range doc.QueryAll("table") {
		rows := table.QueryAll("tr")
		if len(rows) < 3 {
			continue
		}

		col := -1
		for j, cell := range rows[0].QueryAll("th, td") {
			if segmentHeaderPattern.MatchString(dom.TrimmedText(cell)) {
				col = j
				break
			}
		}
		if col < 0 {
			continue
		}

		home := segmentValues(cellText(rows[1].QueryAll("th, td"), col))
		guest := segmentValues(cellText(rows[2].QueryAll("th, td"), col))

		var qs []league.QuarterScore
		for i := 0; i < len(home) && i < len(guest); i++ {
			qs = append(qs, league.QuarterScore{Quarter: i + 1, Home: home[i], Guest: guest[i]})
		}
		if len(qs) > 0 {
			return qs
		}
	}
	return nil
}

// segmentValues parses "8-8-4-7", stopping at the first non-numeric part.
// A cell without a hyphen is a single number, not a segment line.
func segmentValues(text string) []int {
	var values []int
	if !strings.Contains(text, "-") {
		return values
	}
	for _, part := range strings.Split(text, "-") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			break
		}
		values = append(values, n)
	}
	return values
}

// scoreboardScores reads the legacy team-row by quarter-column scoreboard.
// Cell 0 is the team, the last cell the total.
func scoreboardScores(doc dom.Document) []league.QuarterScore {
	board, ok := doc.ByID("ContentSection_scoreboard")
	if !ok {
		return nil
	}
	rows := board.QueryAll("tr")
	if len(rows) < 3 {
		return nil
	}
	homeCells := rows[1].QueryAll("td")
	guestCells := rows[2].QueryAll("td")

	var qs []league.QuarterScore
	for i := 1; i <= quarters && i < len(homeCells)-1; i++ {
		home, okHome := leadingInt(cellText(homeCells, i))
		guest, okGuest := leadingInt(cellText(guestCells, i))
		if okHome && okGuest {
			qs = append(qs, league.QuarterScore{Quarter: i, Home: home, Guest: guest})
		}
	}
	return qs
}

// finalScoreBreakdown reads "10:8 (3:2, 2:2, 3:1, 2:3)"
func finalScoreBreakdown(finalScore string) []league.QuarterScore {
	m := quarterBreakdown.FindStringSubmatch(finalScore)
	if m == nil {
		return nil
	}
	qs := make([]league.QuarterScore, 0, quarters)
	for i := 0; i < quarters; i++ {
		home, _ := strconv.Atoi(m[i*2+1])
		guest, _ := strconv.Atoi(m[i*2+2])
		qs = append(qs, league.QuarterScore{Quarter: i + 1, Home: home, Guest: guest})
	}
	return qs
}
