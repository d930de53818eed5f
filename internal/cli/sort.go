package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wbliga/wb-liga/internal/league"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate  SortOrder = "date"
	SortByTeam  SortOrder = "team"
	SortByVenue SortOrder = "venue"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "", SortByDate:
		return SortByDate, nil
	case SortByTeam, SortByVenue:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'date', 'team' or 'venue')", s)
}

// sortGames sorts games in place; equal keys keep their schedule order
func sortGames(games []league.GameSummary, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(games, func(i, j int) bool {
			return compareByDate(games[i], games[j])
		})
	case SortByTeam:
		sort.SliceStable(games, func(i, j int) bool {
			hi, hj := strings.ToLower(games[i].Home), strings.ToLower(games[j].Home)
			if hi != hj {
				return hi < hj
			}
			return compareByDate(games[i], games[j])
		})
	case SortByVenue:
		sort.SliceStable(games, func(i, j int) bool {
			vi, vj := strings.ToLower(games[i].Venue), strings.ToLower(games[j].Venue)
			if vi != vj {
				return vi < vj
			}
			return compareByDate(games[i], games[j])
		})
	}
}

// compareByDate returns true if game i starts before game j.
// Games without a parseable start go last.
func compareByDate(i, j league.GameSummary) bool {
	di, okI := startOf(i)
	dj, okJ := startOf(j)

	switch {
	case okI && okJ:
		return di.Before(dj)
	case okI:
		return true
	case okJ:
		return false
	}
	return false
}

func startOf(g league.GameSummary) (league.DateTime, bool) {
	if g.StartAt != nil {
		return *g.StartAt, true
	}
	return league.ParseDateTime(g.Start)
}
