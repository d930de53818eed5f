package league

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var scorePattern = regexp.MustCompile(`(\d+)\s*:\s*(\d+)`)

// ParseScore extracts "home:guest" goals from a result or score string
func ParseScore(s string) (home, guest int, ok bool) {
	m := scorePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	home, err1 := strconv.Atoi(m[1])
	guest, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return home, guest, true
}

// IsPlayed reports whether the game has a final result
func (g GameSummary) IsPlayed() bool {
	_, _, ok := ParseScore(g.Result)
	return ok
}

// Score returns the final goals of both sides if the game has been played
func (g GameSummary) Score() (home, guest int, ok bool) {
	return ParseScore(g.Result)
}

// Outcome is a played game's result from one team's point of view
type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeDraw    Outcome = "draw"
	OutcomeLoss    Outcome = "loss"
	OutcomeUnknown Outcome = ""
)

// OutcomeFor returns the outcome of the game for the named team.
// Unplayed games and teams not taking part yield OutcomeUnknown.
func (g GameSummary) OutcomeFor(team string) Outcome {
	home, guest, ok := g.Score()
	if !ok {
		return OutcomeUnknown
	}

	var own, other int
	switch team {
	case g.Home:
		own, other = home, guest
	case g.Guest:
		own, other = guest, home
	default:
		return OutcomeUnknown
	}

	switch {
	case own > other:
		return OutcomeWin
	case own < other:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// IsPast reports whether the game's start lies before now.
// Returns false if the start cannot be parsed.
func (g GameSummary) IsPast(now time.Time) bool {
	dt, ok := ParseDateTime(g.Start)
	if !ok {
		return false
	}
	return dt.Time(now.Location()).Before(now)
}

// GamesForTeam returns the played games in which the team took part
func GamesForTeam(games []GameSummary, team string) []GameSummary {
	out := make([]GameSummary, 0)
	for _, g := range games {
		if (g.Home == team || g.Guest == team) && g.IsPlayed() {
			out = append(out, g)
		}
	}
	return out
}

// MatchdayKey returns the date part of a start text ("04.10.25, 16:00 Uhr" -> "04.10.25")
func MatchdayKey(start string) string {
	day, _, _ := strings.Cut(start, ",")
	return strings.TrimSpace(day)
}

// GroupByMatchday groups games by their matchday key and returns the keys
// in chronological order. Unparseable keys sort last, alphabetically.
func GroupByMatchday(games []GameSummary) (map[string][]GameSummary, []string) {
	groups := make(map[string][]GameSummary)
	for _, g := range games {
		key := MatchdayKey(g.Start)
		groups[key] = append(groups[key], g)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, okI := ParseDate(keys[i])
		dj, okJ := ParseDate(keys[j])
		switch {
		case okI && okJ:
			return di.Before(dj)
		case okI:
			return true
		case okJ:
			return false
		}
		return keys[i] < keys[j]
	})

	return groups, keys
}
