package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wbliga/wb-liga/internal/league"
	"github.com/wbliga/wb-liga/internal/normalize"
)

const leaguePage = `<html><body>
<h1><span id="ContentSection__headerLabel">Oberliga Nord</span></h1>
<div class="card">
  <div class="card-header"><span id="ContentSection__roundLabel">Spielplan</span></div>
  <div class="card-body"><table>
    <tr><th>Spiel</th><th>Beginn</th><th></th><th>Heim</th><th></th><th>Gast</th><th>Ort</th><th>Erg.</th></tr>
    <tr><td>1</td><td>04.10.25, 16:00 Uhr</td><td></td><td>Team A</td><td></td><td>Team B</td><td>Nordbad</td>
        <td><a href="Game.aspx?Season=2025&amp;GameID=1">10:8</a></td></tr>
    <tr><td>2</td><td>08.10.25, 19:00 Uhr</td><td></td><td>Team B</td><td></td><td>Team C</td><td>Südbad</td>
        <td></td></tr>
  </table></div>
</div>
<div class="card">
  <div class="card-header"><span id="ContentSection__tableLabel">Tabelle</span></div>
  <div class="card-body"><table>
    <tr><th>Pl.</th><th></th><th>Mannschaft</th><th>Sp.</th><th>S</th><th>U</th><th>N</th><th>Tore</th><th>Diff.</th><th>Pkt.</th><th>Form</th></tr>
    <tr><td>1.</td><td></td><td>Team A</td><td>1</td><td>1</td><td>0</td><td>0</td><td>10:8</td><td>+2</td><td>3</td><td>S</td></tr>
    <tr><td>2.</td><td></td><td>Team B</td><td>1</td><td>0</td><td>0</td><td>1</td><td>8:10</td><td>-2</td><td>0</td><td>N</td></tr>
  </table></div>
</div>
</body></html>`

const gamePage = `<html><body>
<span id="ContentSection__headerLabel">Team A : Team B</span>
<span id="ContentSection__gameidLabel">Spiel-Nr.: 1</span>
<span id="ContentSection__leagueLabel">Oberliga Nord</span>
<span id="ContentSection__startdateLabel">04.10.2025, 16:00 Uhr</span>
<span id="ContentSection__whiteLabel">Team A</span>
<span id="ContentSection__blueLabel">Team B</span>
<span id="ContentSection__scoringLabel">10:8 (3:2, 2:2, 3:1, 2:3)</span>
<span id="ContentSection__poolnameLabel">Nordbad</span>
<span id="ContentSection__poolcityLabel">Musterweg 1, 12345 Musterstadt</span>
</body></html>`

// run executes the root command with an isolated environment
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Modules/WB/League.aspx":
			_, _ = w.Write([]byte(leaguePage))
		case "/Modules/WB/Game.aspx":
			_, _ = w.Write([]byte(gamePage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSortGames(t *testing.T) {
	games := func() []league.GameSummary {
		return []league.GameSummary{
			{Start: "tba", Home: "Alpha", Venue: "Zentralbad"},
			{Start: "11.10.25, 18:00 Uhr", Home: "Charlie", Venue: "Ostbad"},
			{Start: "04.10.25, 16:00 Uhr", Home: "Bravo", Venue: "Nordbad"},
		}
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByDate, []string{"Bravo", "Charlie", "Alpha"}},
		{SortByTeam, []string{"Alpha", "Bravo", "Charlie"}},
		{SortByVenue, []string{"Bravo", "Charlie", "Alpha"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got := games()
			sortGames(got, tt.order)
			for i, home := range tt.want {
				if got[i].Home != home {
					t.Errorf("position %d = %q, want %q", i, got[i].Home, home)
				}
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	if got, err := ParseSortOrder(""); err != nil || got != SortByDate {
		t.Errorf("ParseSortOrder(\"\") = %q, %v", got, err)
	}
	if _, err := ParseSortOrder("points"); err == nil {
		t.Error("expected error for unknown sort order")
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "league.html")
	if err := os.WriteFile(file, []byte(leaguePage), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "parse", "league", file, "--format", "json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var result LeagueResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if result.Name != "Oberliga Nord" {
		t.Errorf("name = %q", result.Name)
	}
	if len(result.Games) != 2 || len(result.Standings) != 2 {
		t.Errorf("got %d games and %d standings rows", len(result.Games), len(result.Standings))
	}
	if result.Games[0].Link != "Game.aspx?Season=2025&GameID=1" {
		t.Errorf("game link = %q", result.Games[0].Link)
	}

	if _, err := run(t, "parse", "calendar", file); err == nil {
		t.Error("expected error for unknown page kind")
	}
	if _, err := run(t, "parse", "league", filepath.Join(dir, "missing.html")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLeagueCommand(t *testing.T) {
	server := newSite(t)
	link := "League.aspx?Season=2025&LeagueID=1"

	tests := []struct {
		name      string
		args      []string
		wantHomes []string
		wantErr   bool
	}{
		{name: "all games", wantHomes: []string{"Team A", "Team B"}},
		{name: "team filter", args: []string{"--team", "Team C"}, wantHomes: []string{"Team B"}},
		{name: "played only", args: []string{"--played"}, wantHomes: []string{"Team A"}},
		{name: "weekends only", args: []string{"--weekends"}, wantHomes: []string{"Team A"}},
		{name: "date bound", args: []string{"--from", "05.10.25"}, wantHomes: []string{"Team B"}},
		{name: "sorted by venue", args: []string{"--sort", "venue"}, wantHomes: []string{"Team A", "Team B"}},
		{name: "conflicting status", args: []string{"--played", "--scheduled"}, wantErr: true},
		{name: "bad date", args: []string{"--from", "gestern"}, wantErr: true},
		{name: "bad sort", args: []string{"--sort", "points"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"league", link, "--base-url", server.URL, "--format", "json"}, tt.args...)
			out, err := run(t, args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("league error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var result LeagueResult
			if err := json.Unmarshal([]byte(out), &result); err != nil {
				t.Fatalf("decoding output: %v", err)
			}
			if result.Source != "live" {
				t.Errorf("source = %q", result.Source)
			}
			if len(result.Games) != len(tt.wantHomes) {
				t.Fatalf("got %d games, want %d", len(result.Games), len(tt.wantHomes))
			}
			for i, home := range tt.wantHomes {
				if result.Games[i].Home != home {
					t.Errorf("game %d home = %q, want %q", i, result.Games[i].Home, home)
				}
			}
		})
	}
}

func TestLeagueCommand_TextOutput(t *testing.T) {
	server := newSite(t)

	out, err := run(t, "league", "League.aspx?Season=2025&LeagueID=1", "--base-url", server.URL, "--team", "Team A")
	if err != nil {
		t.Fatalf("league failed: %v", err)
	}
	for _, want := range []string{"Oberliga Nord", "Filter: Teams: Team A", "Games (1):", "Standings:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCollectNormalizeDedupe(t *testing.T) {
	server := newSite(t)
	db := filepath.Join(t.TempDir(), "seasons.db")
	link := "League.aspx?Season=2025&LeagueID=1"
	common := []string{"--db", db, "--base-url", server.URL, "--format", "json"}

	out, err := run(t, append([]string{"collect", link, "--workers", "2"}, common...)...)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	var collected CollectResult
	if err := json.Unmarshal([]byte(out), &collected); err != nil {
		t.Fatalf("decoding collect output: %v", err)
	}
	if len(collected.Leagues) != 1 {
		t.Fatalf("got %d leagues", len(collected.Leagues))
	}
	if l := collected.Leagues[0]; l.Games != 2 || l.Details != 1 || l.DetailErrors != 0 {
		t.Errorf("collected = %+v", l)
	}
	if collected.Metrics.Counters["scraper.games"] == 0 || collected.Metrics.Counters["collect.details"] == 0 {
		t.Errorf("collect metrics missing fetch counters: %v", collected.Metrics.Counters)
	}
	if collected.Metrics.Gauges["collect.workers"] != 2 {
		t.Errorf("collect.workers gauge = %v, want 2", collected.Metrics.Gauges["collect.workers"])
	}

	// game details already stored are not fetched again
	out, err = run(t, append([]string{"collect", link}, common...)...)
	if err != nil {
		t.Fatalf("second collect failed: %v", err)
	}
	collected = CollectResult{}
	if err := json.Unmarshal([]byte(out), &collected); err != nil {
		t.Fatalf("decoding collect output: %v", err)
	}
	if collected.Leagues[0].Details != 0 {
		t.Errorf("second collect fetched %d details", collected.Leagues[0].Details)
	}

	out, err = run(t, append([]string{"normalize"}, common...)...)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	var summary normalize.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decoding normalize output: %v", err)
	}
	if summary.TeamsCreated != 3 || summary.VenuesCreated != 1 {
		t.Errorf("teams = %d, venues = %d", summary.TeamsCreated, summary.VenuesCreated)
	}
	if _, ok := summary.Metrics.Timings["normalize.stage.dedupe"]; !ok {
		t.Error("normalize output carries no stage timings")
	}
	if summary.DuplicatesRemoved == 0 {
		t.Error("expected rows of the first collection to be removed")
	}
	if _, err := os.Stat(summary.BackupPath); err != nil {
		t.Errorf("backup not written: %v", err)
	}

	out, err = run(t, append([]string{"dedupe"}, common...)...)
	if err != nil {
		t.Fatalf("dedupe failed: %v", err)
	}
	var merged normalize.MergeSummary
	if err := json.Unmarshal([]byte(out), &merged); err != nil {
		t.Fatalf("decoding dedupe output: %v", err)
	}
	if merged.TeamsMerged != 0 || merged.RowsRepointed != 0 {
		t.Errorf("merge = %+v", merged)
	}

	out, err = run(t, "league", link, "--from-store", "--db", db, "--format", "json")
	if err != nil {
		t.Fatalf("league --from-store failed: %v", err)
	}
	var stored LeagueResult
	if err := json.Unmarshal([]byte(out), &stored); err != nil {
		t.Fatalf("decoding league output: %v", err)
	}
	if stored.Source != "store" || len(stored.Games) != 2 {
		t.Errorf("stored league = %s with %d games", stored.Source, len(stored.Games))
	}
}

func TestCollectCommand_Args(t *testing.T) {
	db := filepath.Join(t.TempDir(), "seasons.db")

	if _, err := run(t, "collect", "--db", db); err == nil {
		t.Error("expected error without links or --all")
	}
	if _, err := run(t, "collect", "League.aspx?LeagueID=1", "--all", "--db", db); err == nil {
		t.Error("expected error for links combined with --all")
	}
}

func TestRootCmd_InvalidFormat(t *testing.T) {
	if _, err := run(t, "parse", "game", "x.html", "--format", "yaml"); err == nil {
		t.Error("expected invalid format to fail before running the command")
	}
}
