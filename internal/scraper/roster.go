package scraper

import (
	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

const (
	rosterHeaderRows = 2
	rosterMinCells   = 8
	firstFoulCell    = 4
)

// rosters returns the home and guest player lines of the players tab
func rosters(doc dom.Document) [2][]league.PlayerStat {
	var out [2][]league.PlayerStat

	tab, ok := doc.ByID("players")
	if !ok {
		return out
	}
	containers := tab.QueryAll(".col-12.col-md-6")
	for side := 0; side < len(out) && side < len(containers); side++ {
		table, ok := containers[side].Query("table")
		if !ok {
			continue
		}
		out[side] = roster(table)
	}
	return out
}

func roster(table dom.Element) []league.PlayerStat {
	rows := table.QueryAll("tr")
	if len(rows) <= rosterHeaderRows {
		return nil
	}

	var players []league.PlayerStat
	for _, row := range rows[rosterHeaderRows:] {
		cells := row.QueryAll("td")
		// team info rows span the table with a colspan
		if len(cells) < rosterMinCells {
			continue
		}

		p := league.PlayerStat{
			Number:    cellText(cells, 0),
			Name:      cellText(cells, 1),
			BirthYear: cellText(cells, 2),
			Goals:     intOrZero(cellText(cells, 3)),
		}
		for q := 1; q <= quarters; q++ {
			if code := cellText(cells, firstFoulCell+q-1); code != "" {
				p.Fouls = append(p.Fouls, league.PersonalFoul{Quarter: q, FoulType: code})
			}
		}
		players = append(players, p)
	}
	return players
}
