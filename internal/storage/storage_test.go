package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wbliga/wb-liga/internal/league"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "seasons.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() }) // nolint:errcheck
	return s
}

func strPtr(s string) *string { return &s }

func sampleLeague(result string) *league.League {
	return &league.League{
		Name: "DWL Männer",
		Link: "League.aspx?Season=2025&LeagueID=1",
		Games: []league.GameSummary{
			{Start: "04.10.25, 16:00 Uhr", Home: "Team A", Guest: "Team B", Venue: "Nordbad", Link: "Game.aspx?GameID=1", Result: result},
			{Start: "11.10.25, 16:00 Uhr", Home: "Team B", Guest: "Team A", Venue: "Südbad", Result: league.NotPlayed},
		},
		Standings: []league.StandingsRow{
			{Rank: 1, Team: "Team A", Info: "(i)", Games: 1, Wins: 1, Goals: "10:8", GoalDifference: 2, Points: 3,
				Form: []league.FormResult{league.FormWin}},
			{Rank: 2, Team: "Team B", Games: 1, Losses: 1, Goals: "8:10", GoalDifference: -2},
		},
		Scorers: []league.ScorerRow{
			{Rank: 1, Name: "Max Muster (2001)", Team: "Team A", Goals: 4, Games: 1},
		},
	}
}

func TestOpen_CreatesTables(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, table := range RawTables {
		if _, err := s.Count(ctx, table); err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
	if _, err := s.Count(ctx, "sqlite_master; DROP TABLE games"); err == nil {
		t.Error("expected unknown table names to be rejected")
	}

	var mode string
	if err := s.DB().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSaveLeague_AppendsAndLoadsLatest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := time.Date(2025, 10, 5, 8, 0, 0, 0, time.UTC)
	if err := s.SaveLeague(ctx, sampleLeague(league.NotPlayed), first); err != nil {
		t.Fatalf("SaveLeague() error = %v", err)
	}
	if err := s.SaveLeague(ctx, sampleLeague("10:8"), first.Add(time.Hour)); err != nil {
		t.Fatalf("SaveLeague() error = %v", err)
	}

	if n, _ := s.Count(ctx, "games"); n != 4 {
		t.Errorf("games = %d, want 4 (append-only)", n)
	}
	if n, _ := s.Count(ctx, "leagues"); n != 1 {
		t.Errorf("leagues = %d, want 1", n)
	}

	l, err := s.LoadLeague(ctx, "League.aspx?Season=2025&LeagueID=1")
	if err != nil {
		t.Fatalf("LoadLeague() error = %v", err)
	}
	if l.Name != "DWL Männer" {
		t.Errorf("Name = %q", l.Name)
	}
	if len(l.Games) != 2 || l.Games[0].Result != "10:8" {
		t.Fatalf("expected latest collection of 2 games, got %+v", l.Games)
	}
	if l.Games[0].StartAt == nil || l.Games[0].Link != "Game.aspx?GameID=1" {
		t.Errorf("game = %+v", l.Games[0])
	}
	if len(l.Standings) != 2 || l.Standings[0].Info != "(i)" || len(l.Standings[0].Form) != 1 {
		t.Errorf("standings = %+v", l.Standings)
	}
	if l.Standings[1].GoalDifference != -2 {
		t.Errorf("negative goal difference = %d", l.Standings[1].GoalDifference)
	}
	if len(l.Scorers) != 1 || l.Scorers[0].Goals != 4 {
		t.Errorf("scorers = %+v", l.Scorers)
	}

	leagues, err := s.Leagues(ctx)
	if err != nil {
		t.Fatalf("Leagues() error = %v", err)
	}
	if len(leagues) != 1 || leagues[0].Season != "2025" || !leagues[0].CollectedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("leagues = %+v", leagues)
	}
}

func TestSaveLeague_MissingLink(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveLeague(context.Background(), &league.League{Name: "x"}, time.Now()); err == nil {
		t.Error("expected an error for a league without link")
	}
}

func TestLoadLeague_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadLeague(context.Background(), "League.aspx?LeagueID=404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadLeague() error = %v, want ErrNotFound", err)
	}
}

func TestSaveGameDetail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 10, 5, 8, 0, 0, 0, time.UTC)

	if err := s.SaveLeague(ctx, sampleLeague("10:8"), now); err != nil {
		t.Fatal(err)
	}

	goal := 1
	detail := &league.GameDetail{
		GameID:     "4711",
		FinalScore: "10:8",
		Home: league.TeamDetail{
			Name:  "Team A",
			Coach: strPtr("Hans Coach"),
			Players: []league.PlayerStat{
				{Number: "5", Name: "Max Muster", BirthYear: "2001", Goals: 4,
					Fouls: []league.PersonalFoul{{Quarter: 1, FoulType: "A"}}},
			},
		},
		Guest:         league.TeamDetail{Name: "Team B"},
		QuarterScores: []league.QuarterScore{{Quarter: 1, Home: 3, Guest: 2}},
		Venue:         league.Venue{PoolName: "Nordbad", City: "Musterweg 1, 12345 Musterstadt"},
		Officials:     league.Officials{Referee1: strPtr("Erika Pfiff")},
		Events: []league.GameEvent{
			{Time: "7:35", Quarter: 1, HomeScore: 1, Player: "5", Type: "T", GoalNumber: &goal},
			{Time: "6:10", Quarter: 1, HomeScore: 1, Player: "7", Type: "A"},
		},
	}

	if err := s.SaveGameDetail(ctx, "Game.aspx?GameID=1", detail, now); err != nil {
		t.Fatalf("SaveGameDetail() error = %v", err)
	}

	counts := map[string]int{
		"game_team_details":   2,
		"game_lineups":        1,
		"game_events":         2,
		"game_quarter_scores": 1,
		"game_officials":      1,
	}
	for table, want := range counts {
		if n, err := s.Count(ctx, table); err != nil || n != want {
			t.Errorf("%s = %d (%v), want %d", table, n, err, want)
		}
	}

	var pool, city, fouls string
	var goalNumber *int
	if err := s.DB().QueryRowContext(ctx,
		`SELECT pool_name, pool_city FROM games WHERE game_link = ?`, "Game.aspx?GameID=1",
	).Scan(&pool, &city); err != nil {
		t.Fatal(err)
	}
	if pool != "Nordbad" || city != "Musterweg 1, 12345 Musterstadt" {
		t.Errorf("venue copied onto game = %q/%q", pool, city)
	}
	if err := s.DB().QueryRowContext(ctx, `SELECT fouls FROM game_lineups`).Scan(&fouls); err != nil {
		t.Fatal(err)
	}
	if fouls != "1:A" {
		t.Errorf("fouls = %q", fouls)
	}
	if err := s.DB().QueryRowContext(ctx, `SELECT goal_number FROM game_events WHERE seq = 1`).Scan(&goalNumber); err != nil {
		t.Fatal(err)
	}
	if goalNumber != nil {
		t.Errorf("non-goal event stored goal number %d", *goalNumber)
	}

	links, err := s.CollectedGameLinks(ctx, "League.aspx?Season=2025&LeagueID=1")
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 0 {
		t.Errorf("expected no pending detail links, got %v", links)
	}
}

func TestSaveLeague_CarriesGameDetail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	first := time.Date(2025, 10, 5, 8, 0, 0, 0, time.UTC)

	if err := s.SaveLeague(ctx, sampleLeague("10:8"), first); err != nil {
		t.Fatal(err)
	}
	detail := &league.GameDetail{
		GameID:     "4711",
		FinalScore: "10:8",
		Venue:      league.Venue{PoolName: "Nordbad", City: "Musterstadt"},
	}
	if err := s.SaveGameDetail(ctx, "Game.aspx?GameID=1", detail, first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLeague(ctx, sampleLeague("10:8"), first.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}

	var pool, number string
	if err := s.DB().QueryRowContext(ctx, `
		SELECT pool_name, game_number FROM games
		WHERE game_link = ? ORDER BY id DESC LIMIT 1`, "Game.aspx?GameID=1",
	).Scan(&pool, &number); err != nil {
		t.Fatal(err)
	}
	if pool != "Nordbad" || number != "4711" {
		t.Errorf("latest row carries %q/%q, want Nordbad/4711", pool, number)
	}

	var unlinked int
	if err := s.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE game_link IS NULL AND pool_name IS NOT NULL`,
	).Scan(&unlinked); err != nil {
		t.Fatal(err)
	}
	if unlinked != 0 {
		t.Errorf("%d rows without a link received game details", unlinked)
	}
}

func TestCollectedGameLinks_Pending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveLeague(ctx, sampleLeague("10:8"), time.Now()); err != nil {
		t.Fatal(err)
	}
	links, err := s.CollectedGameLinks(ctx, "League.aspx?Season=2025&LeagueID=1")
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 1 || links[0] != "Game.aspx?GameID=1" {
		t.Errorf("links = %v", links)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN("/tmp/x.db")
	for _, want := range []string{"foreign_keys", "journal_mode", "synchronous", "busy_timeout", "_txlock=immediate"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q is missing %q", dsn, want)
		}
	}
}
