package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/wbliga/wb-liga/internal/league"
	"github.com/wbliga/wb-liga/internal/logger"
	"github.com/wbliga/wb-liga/internal/normalize"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// LeagueResult is the output of the league command
type LeagueResult struct {
	Name      string                `json:"name"`
	Link      string                `json:"link"`
	Filter    string                `json:"filter,omitempty"`
	Source    string                `json:"source"`
	Games     []league.GameSummary  `json:"games"`
	Standings []league.StandingsRow `json:"standings"`
	Scorers   []league.ScorerRow    `json:"scorers"`
}

// GameResult is the output of the game command
type GameResult struct {
	Link   string             `json:"link"`
	Detail *league.GameDetail `json:"detail"`
}

// CollectedLeague reports what collect stored for one league
type CollectedLeague struct {
	Link         string `json:"link"`
	Name         string `json:"name"`
	Games        int    `json:"games"`
	Standings    int    `json:"standings"`
	Scorers      int    `json:"scorers"`
	Details      int    `json:"details"`
	DetailErrors int    `json:"detail_errors"`
}

// CollectResult is the output of the collect command
type CollectResult struct {
	CollectedAt time.Time         `json:"collected_at"`
	Database    string            `json:"database"`
	Leagues     []CollectedLeague `json:"leagues"`
	Metrics     logger.Snapshot   `json:"metrics"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result any, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result any) error {
	switch r := result.(type) {
	case []league.LeagueGroup:
		writeGroups(w, r)
	case *LeagueResult:
		writeLeague(w, r)
	case *GameResult:
		writeGame(w, r)
	case *CollectResult:
		writeCollect(w, r)
	case *normalize.Summary:
		writeSummary(w, r)
	case *normalize.MergeSummary:
		writeMergeSummary(w, r)
	default:
		return fmt.Errorf("no text rendering for %T", result)
	}
	return nil
}

func writeGroups(w io.Writer, groups []league.LeagueGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No leagues found.")
		return
	}

	total := 0
	for _, g := range groups {
		fmt.Fprintf(w, "\n%s (%d leagues):\n", g.Name, len(g.Entries))
		for _, e := range g.Entries {
			if e.Gender != "" {
				fmt.Fprintf(w, "  %s [%s]\n", e.Name, e.Gender)
			} else {
				fmt.Fprintf(w, "  %s\n", e.Name)
			}
			fmt.Fprintf(w, "       Link: %s\n", e.Link)
		}
		total += len(g.Entries)
	}
	fmt.Fprintf(w, "\nTotal: %d leagues across %d groups\n", total, len(groups))
}

func writeLeague(w io.Writer, r *LeagueResult) {
	name := r.Name
	if name == "" {
		name = r.Link
	}
	fmt.Fprintf(w, "%s\n", name)
	if r.Filter != "" {
		fmt.Fprintf(w, "Filter: %s\n", r.Filter)
	}

	fmt.Fprintf(w, "\nGames (%d):\n", len(r.Games))
	for _, g := range r.Games {
		result := strings.TrimSpace(g.Result)
		if !g.IsPlayed() {
			result = "-:-"
		}
		fmt.Fprintf(w, "  %-20s %s %s %s", g.Start, g.Home, result, g.Guest)
		if g.Venue != "" {
			fmt.Fprintf(w, " (%s)", g.Venue)
		}
		fmt.Fprintln(w)
	}

	if len(r.Standings) > 0 {
		fmt.Fprintf(w, "\nStandings:\n")
		for _, s := range r.Standings {
			team := s.Team
			if s.Info != "" {
				team += " " + s.Info
			}
			fmt.Fprintf(w, "  %2d. %-30s %2d %2d-%d-%d %7s %+4d %3d  %s\n",
				s.Rank, team, s.Games, s.Wins, s.Draws, s.Losses, s.Goals, s.GoalDifference, s.Points, formString(s.Form))
		}
	}

	if len(r.Scorers) > 0 {
		fmt.Fprintf(w, "\nScorers:\n")
		for _, s := range r.Scorers {
			fmt.Fprintf(w, "  %2d. %-30s %-25s %3d goals in %d games\n", s.Rank, s.Name, s.Team, s.Goals, s.Games)
		}
	}
}

func formString(form []league.FormResult) string {
	var b strings.Builder
	for _, f := range form {
		b.WriteString(string(f))
	}
	return b.String()
}

func writeGame(w io.Writer, r *GameResult) {
	d := r.Detail
	fmt.Fprintf(w, "%s vs %s  %s\n", d.Home.Name, d.Guest.Name, d.FinalScore)
	if d.League != "" {
		fmt.Fprintf(w, "League: %s\n", d.League)
	}
	if d.StartDate != "" {
		fmt.Fprintf(w, "Start: %s\n", d.StartDate)
	}
	if d.Venue.PoolName != "" {
		fmt.Fprintf(w, "Venue: %s, %s\n", d.Venue.PoolName, d.Venue.City)
	}
	if len(d.QuarterScores) > 0 {
		parts := make([]string, len(d.QuarterScores))
		for i, q := range d.QuarterScores {
			parts[i] = fmt.Sprintf("%d:%d", q.Home, q.Guest)
		}
		fmt.Fprintf(w, "Quarters: %s\n", strings.Join(parts, ", "))
	}

	for _, role := range d.Officials.Roles() {
		fmt.Fprintf(w, "  %s: %s\n", role[0], role[1])
	}

	for _, side := range []league.TeamDetail{d.Home, d.Guest} {
		if len(side.Players) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", side.Name)
		for _, p := range side.Players {
			fmt.Fprintf(w, "  %3s %-30s %s  %d goals\n", p.Number, p.Name, p.BirthYear, p.Goals)
		}
	}

	if len(d.Events) > 0 {
		fmt.Fprintf(w, "\nEvents (%d):\n", len(d.Events))
		for _, e := range d.Events {
			fmt.Fprintf(w, "  Q%d %6s  %2d:%-2d  %-4s %s\n", e.Quarter, e.Time, e.HomeScore, e.GuestScore, e.Type, e.Player)
		}
	}
}

func writeCollect(w io.Writer, r *CollectResult) {
	for _, l := range r.Leagues {
		fmt.Fprintf(w, "%s: %d games, %d standings rows, %d scorers, %d game details",
			l.Name, l.Games, l.Standings, l.Scorers, l.Details)
		if l.DetailErrors > 0 {
			fmt.Fprintf(w, " (%d failed)", l.DetailErrors)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nCollected %d leagues into %s\n", len(r.Leagues), r.Database)
	writeMetrics(w, r.Metrics)
}

func writeSummary(w io.Writer, s *normalize.Summary) {
	fmt.Fprintf(w, "Normalizer run %s\n", s.RunID)
	fmt.Fprintf(w, "\nAtomic fields:\n")
	fmt.Fprintf(w, "  Scores parsed:          %d\n", s.ScoresParsed)
	fmt.Fprintf(w, "  Dates parsed:           %d\n", s.DatesParsed)
	fmt.Fprintf(w, "  Table goals parsed:     %d\n", s.TableGoalsParsed)
	fmt.Fprintf(w, "  Player names parsed:    %d\n", s.PlayerNamesParsed)
	fmt.Fprintf(w, "  Addresses parsed:       %d\n", s.AddressesParsed)
	fmt.Fprintf(w, "\nReferences:\n")
	fmt.Fprintf(w, "  Teams created:          %d\n", s.TeamsCreated)
	fmt.Fprintf(w, "  Venues created:         %d\n", s.VenuesCreated)
	fmt.Fprintf(w, "  Players created:        %d\n", s.PlayersCreated)
	fmt.Fprintf(w, "  Foreign keys set:       %d\n", s.Backfills())
	fmt.Fprintf(w, "  Unlinked rows:          %d\n", s.BackfillMisses)
	fmt.Fprintf(w, "\nCleanup:\n")
	fmt.Fprintf(w, "  Duplicates removed:     %d\n", s.DuplicatesRemoved)
	fmt.Fprintf(w, "  Statistics rows:        %d\n", s.StatsRows)
	fmt.Fprintf(w, "  Indexes ensured:        %d\n", s.Indexes)
	if s.Vacuumed {
		fmt.Fprintf(w, "  Vacuumed:               yes\n")
	}
	fmt.Fprintf(w, "\nBackup: %s\n", s.BackupPath)
	fmt.Fprintf(w, "Duration: %s\n", s.Duration.Round(time.Millisecond))
	writeMetrics(w, s.Metrics)
}

func writeMergeSummary(w io.Writer, s *normalize.MergeSummary) {
	fmt.Fprintf(w, "Merge pass %s\n", s.RunID)
	fmt.Fprintf(w, "  Teams merged:    %d\n", s.TeamsMerged)
	fmt.Fprintf(w, "  Players merged:  %d\n", s.PlayersMerged)
	fmt.Fprintf(w, "  Venues merged:   %d\n", s.VenuesMerged)
	fmt.Fprintf(w, "  Rows repointed:  %d\n", s.RowsRepointed)
	fmt.Fprintf(w, "\nBackup: %s\n", s.BackupPath)
	writeMetrics(w, s.Metrics)
}

func writeMetrics(w io.Writer, m logger.Snapshot) {
	if len(m.Counters) == 0 && len(m.Timings) == 0 && len(m.Gauges) == 0 {
		return
	}
	fmt.Fprintf(w, "\nMetrics:\n")
	for _, name := range slices.Sorted(maps.Keys(m.Counters)) {
		fmt.Fprintf(w, "  %-36s %d\n", name, m.Counters[name])
	}
	for _, name := range slices.Sorted(maps.Keys(m.Gauges)) {
		fmt.Fprintf(w, "  %-36s %.3f\n", name, m.Gauges[name])
	}
	for _, name := range slices.Sorted(maps.Keys(m.Timings)) {
		t := m.Timings[name]
		fmt.Fprintf(w, "  %-36s %d x avg %s (max %s)\n", name, t.Count,
			t.Average.Round(time.Millisecond), t.Max.Round(time.Millisecond))
	}
}
