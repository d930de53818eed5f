package scraper

import (
	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

// noCurrentGames is the entry text the overview shows for an empty group
const noCurrentGames = "keine aktuellen Spiele vorhanden"

// ParseLeagueGroups extracts the league overview. Groups without entries are dropped.
func (p Parser) ParseLeagueGroups(html string) []league.LeagueGroup {
	groups := make([]league.LeagueGroup, 0)

	doc := p.Document(html)
	active, ok := doc.ByID("active")
	if !ok {
		return groups
	}

	for _, card := range active.QueryAll(".card") {
		parts := card.Children()
		if len(parts) < 2 {
			continue
		}
		name := dom.TrimmedText(parts[0])
		body := parts[1].Children()
		if name == "" || len(body) == 0 {
			continue
		}

		group := league.LeagueGroup{Name: name}
		for _, row := range body[0].Children() {
			if entry, ok := p.overviewEntry(row); ok {
				group.Entries = append(group.Entries, entry)
			}
		}
		if len(group.Entries) > 0 {
			groups = append(groups, group)
		}
	}

	return groups
}

func (p Parser) overviewEntry(row dom.Element) (league.LeagueEntry, bool) {
	cols := row.Children()
	if len(cols) < 2 {
		return league.LeagueEntry{}, false
	}
	a, ok := cols[0].Query("a")
	if !ok {
		return league.LeagueEntry{}, false
	}

	name := dom.TrimmedText(a)
	if name == "" || name == noCurrentGames {
		return league.LeagueEntry{}, false
	}
	href, _ := a.Attr("href")

	return league.LeagueEntry{
		Name:   name,
		Gender: dom.TrimmedText(cols[1]),
		Link:   p.relativeLink(href),
	}, true
}
