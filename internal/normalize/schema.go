package normalize

import (
	"context"
	"fmt"
)

// referenceSchema creates the reference and statistics tables
var referenceSchema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		birth_year INTEGER,
		UNIQUE(name, birth_year)
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pool_name TEXT NOT NULL,
		street TEXT,
		postal_code TEXT,
		city TEXT,
		full_address TEXT,
		google_maps_link TEXT,
		UNIQUE(pool_name, city)
	)`,
	`CREATE TABLE IF NOT EXISTS league_stats (
		league_id TEXT PRIMARY KEY REFERENCES leagues(id),
		season_id TEXT,
		total_games INTEGER NOT NULL DEFAULT 0,
		finished_games INTEGER NOT NULL DEFAULT 0,
		total_goals INTEGER NOT NULL DEFAULT 0,
		avg_goals_per_game REAL,
		highest_total INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS team_league_stats (
		team_id INTEGER NOT NULL REFERENCES teams(id),
		league_id TEXT NOT NULL REFERENCES leagues(id),
		games_played INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		draws INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		home_games INTEGER NOT NULL DEFAULT 0,
		home_wins INTEGER NOT NULL DEFAULT 0,
		away_games INTEGER NOT NULL DEFAULT 0,
		away_wins INTEGER NOT NULL DEFAULT 0,
		goals_scored INTEGER NOT NULL DEFAULT 0,
		goals_conceded INTEGER NOT NULL DEFAULT 0,
		goal_difference INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (team_id, league_id)
	)`,
}

type column struct {
	table string
	name  string
	decl  string
}

// addedColumns are the atomic and foreign key columns added to the raw tables
var addedColumns = []column{
	{"games", "home_score", "INTEGER"},
	{"games", "guest_score", "INTEGER"},
	{"games", "goal_difference", "INTEGER"},
	{"games", "total_goals", "INTEGER"},
	{"games", "date_iso", "TEXT"},
	{"games", "time_iso", "TEXT"},
	{"games", "datetime_iso", "TEXT"},
	{"games", "start_year", "INTEGER"},
	{"games", "start_month", "INTEGER"},
	{"games", "start_month_name", "TEXT"},
	{"games", "start_day", "INTEGER"},
	{"games", "start_hour", "INTEGER"},
	{"games", "start_minute", "INTEGER"},
	{"games", "start_day_of_week", "TEXT"},
	{"games", "pool_street", "TEXT"},
	{"games", "pool_postal_code", "TEXT"},
	{"games", "pool_city_name", "TEXT"},
	{"games", "home_team_id", "INTEGER REFERENCES teams(id)"},
	{"games", "guest_team_id", "INTEGER REFERENCES teams(id)"},
	{"games", "venue_id", "INTEGER REFERENCES venues(id)"},
	{"table_entries", "goals_for", "INTEGER"},
	{"table_entries", "goals_against", "INTEGER"},
	{"scorers", "player_name", "TEXT"},
	{"scorers", "player_birth_year", "INTEGER"},
	{"scorers", "player_id", "INTEGER REFERENCES players(id)"},
	{"game_lineups", "player_id", "INTEGER REFERENCES players(id)"},
}

// derivedIndexes are (re)created by the index stage
var derivedIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_games_league_id ON games(league_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_home_team_id ON games(home_team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_guest_team_id ON games(guest_team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_venue_id ON games(venue_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_date ON games(date_iso)`,
	`CREATE INDEX IF NOT EXISTS idx_games_year_month ON games(start_year, start_month)`,
	`CREATE INDEX IF NOT EXISTS idx_games_scores ON games(home_score, guest_score)`,
	`CREATE INDEX IF NOT EXISTS idx_games_total_goals ON games(total_goals DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_venues_city ON venues(city)`,
	`CREATE INDEX IF NOT EXISTS idx_players_name ON players(name)`,
	`CREATE INDEX IF NOT EXISTS idx_players_birth_year ON players(birth_year)`,
	`CREATE INDEX IF NOT EXISTS idx_scorers_league_id ON scorers(league_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scorers_player_id ON scorers(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scorers_goals ON scorers(goals DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_table_entries_league_id ON table_entries(league_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leagues_season_id ON leagues(season_id)`,
	`CREATE INDEX IF NOT EXISTS idx_game_events_game_link ON game_events(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_game_lineups_game_link ON game_lineups(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_game_lineups_player_id ON game_lineups(player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_game_quarter_scores_game_link ON game_quarter_scores(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_game_officials_game_link ON game_officials(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_game_team_details_game_link ON game_team_details(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_team_league_stats_league ON team_league_stats(league_id)`,
	`CREATE INDEX IF NOT EXISTS idx_league_stats_season ON league_stats(season_id)`,
}

// ensureSchema creates the reference tables and adds missing columns.
// Columns are only ever added, so it is safe to call on every run.
func ensureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range referenceSchema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating reference tables: %w", err)
		}
	}

	existing := make(map[string]map[string]bool)
	for _, c := range addedColumns {
		cols, ok := existing[c.table]
		if !ok {
			var err error
			if cols, err = tableColumns(ctx, q, c.table); err != nil {
				return err
			}
			existing[c.table] = cols
		}
		if cols[c.name] {
			continue
		}
		if _, err := q.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.name, c.decl)); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", c.table, c.name, err)
		}
		cols[c.name] = true
	}
	return nil
}

func tableColumns(ctx context.Context, q Querier, table string) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close() // nolint:errcheck

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
