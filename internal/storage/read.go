package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wbliga/wb-liga/internal/league"
)

// LeagueInfo describes a collected league
type LeagueInfo struct {
	Link        string
	Name        string
	Season      string
	CollectedAt time.Time
}

// Leagues lists every collected league ordered by name
func (s *Store) Leagues(ctx context.Context) ([]LeagueInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), COALESCE(season_id, ''), collected_at
		FROM leagues ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying leagues: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var out []LeagueInfo
	for rows.Next() {
		var info LeagueInfo
		var at string
		if err := rows.Scan(&info.Link, &info.Name, &info.Season, &at); err != nil {
			return nil, fmt.Errorf("scanning league: %w", err)
		}
		info.CollectedAt, _ = time.Parse(TimeFormat, at)
		out = append(out, info)
	}
	return out, rows.Err()
}

// LoadLeague returns the most recent collection of a league.
// Returns ErrNotFound if the league was never collected.
func (s *Store) LoadLeague(ctx context.Context, link string) (*league.League, error) {
	l := &league.League{Link: link}

	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(name, '') FROM leagues WHERE id = ?`, link).Scan(&l.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("league %s: %w", link, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying league: %w", err)
	}

	if l.Games, err = s.latestGames(ctx, link); err != nil {
		return nil, err
	}
	if l.Standings, err = s.latestStandings(ctx, link); err != nil {
		return nil, err
	}
	if l.Scorers, err = s.latestScorers(ctx, link); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) latestGames(ctx context.Context, link string) ([]league.GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(start_time, ''), COALESCE(home_team, ''), COALESCE(guest_team, ''),
			COALESCE(home_logo, ''), COALESCE(guest_logo, ''), COALESCE(venue, ''),
			COALESCE(game_link, ''), COALESCE(result, '')
		FROM games
		WHERE league_id = ?1
		  AND collected_at = (SELECT MAX(collected_at) FROM games WHERE league_id = ?1)
		ORDER BY id`, link)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	games := make([]league.GameSummary, 0)
	for rows.Next() {
		var g league.GameSummary
		if err := rows.Scan(&g.Start, &g.Home, &g.Guest, &g.HomeLogo, &g.GuestLogo, &g.Venue, &g.Link, &g.Result); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		if dt, ok := league.ParseDateTime(g.Start); ok {
			g.StartAt = &dt
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *Store) latestStandings(ctx context.Context, link string) ([]league.StandingsRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rank, COALESCE(team, ''), COALESCE(info, ''), COALESCE(logo_url, ''),
			games, wins, draws, losses, COALESCE(goals, ''), goal_difference, points, COALESCE(form, '')
		FROM table_entries
		WHERE league_id = ?1
		  AND collected_at = (SELECT MAX(collected_at) FROM table_entries WHERE league_id = ?1)
		ORDER BY rank, id`, link)
	if err != nil {
		return nil, fmt.Errorf("querying table entries: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	standings := make([]league.StandingsRow, 0)
	for rows.Next() {
		var r league.StandingsRow
		var form string
		if err := rows.Scan(&r.Rank, &r.Team, &r.Info, &r.LogoURL, &r.Games, &r.Wins, &r.Draws,
			&r.Losses, &r.Goals, &r.GoalDifference, &r.Points, &form); err != nil {
			return nil, fmt.Errorf("scanning table entry: %w", err)
		}
		r.Form = decodeForm(form)
		standings = append(standings, r)
	}
	return standings, rows.Err()
}

func (s *Store) latestScorers(ctx context.Context, link string) ([]league.ScorerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rank, COALESCE(name, ''), COALESCE(team, ''), goals, games
		FROM scorers
		WHERE league_id = ?1
		  AND collected_at = (SELECT MAX(collected_at) FROM scorers WHERE league_id = ?1)
		ORDER BY rank, id`, link)
	if err != nil {
		return nil, fmt.Errorf("querying scorers: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	scorers := make([]league.ScorerRow, 0)
	for rows.Next() {
		var r league.ScorerRow
		if err := rows.Scan(&r.Rank, &r.Name, &r.Team, &r.Goals, &r.Games); err != nil {
			return nil, fmt.Errorf("scanning scorer: %w", err)
		}
		scorers = append(scorers, r)
	}
	return scorers, rows.Err()
}

// CollectedGameLinks returns the detail links of stored games that have no
// game detail yet
func (s *Store) CollectedGameLinks(ctx context.Context, leagueLink string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT game_link FROM games
		WHERE league_id = ? AND game_link IS NOT NULL
		  AND game_link NOT IN (SELECT game_link FROM game_team_details)
		ORDER BY game_link`, leagueLink)
	if err != nil {
		return nil, fmt.Errorf("querying game links: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var links []string
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scanning game link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Count returns the number of rows in one of the known tables
func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !isKnownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

func isKnownTable(table string) bool {
	for _, t := range RawTables {
		if strings.EqualFold(t, table) {
			return true
		}
	}
	switch table {
	case "teams", "players", "venues", "league_stats", "team_league_stats":
		return true
	}
	return false
}
