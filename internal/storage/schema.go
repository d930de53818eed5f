package storage

// rawSchema holds the tables written by the collector. The normalizer adds
// atomic and foreign-key columns to them in place.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS leagues (
		id TEXT PRIMARY KEY,
		name TEXT,
		season_id TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		league_id TEXT REFERENCES leagues(id),
		natural_key TEXT,
		start_time TEXT,
		home_team TEXT,
		guest_team TEXT,
		home_logo TEXT,
		guest_logo TEXT,
		venue TEXT,
		game_link TEXT,
		result TEXT,
		pool_name TEXT,
		pool_city TEXT,
		google_maps_link TEXT,
		game_number TEXT,
		play_kind TEXT,
		final_score TEXT,
		scoring_system TEXT,
		notes TEXT,
		video_link TEXT,
		protocol_link TEXT,
		end_time TEXT,
		organizer TEXT,
		game_detail_at TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS table_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		league_id TEXT REFERENCES leagues(id),
		rank INTEGER,
		team TEXT,
		info TEXT,
		logo_url TEXT,
		games INTEGER,
		wins INTEGER,
		draws INTEGER,
		losses INTEGER,
		goals TEXT,
		goal_difference INTEGER,
		points INTEGER,
		form TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scorers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		league_id TEXT REFERENCES leagues(id),
		rank INTEGER,
		name TEXT,
		team TEXT,
		goals INTEGER,
		games INTEGER,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_lineups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_link TEXT NOT NULL,
		side TEXT NOT NULL,
		team TEXT,
		number TEXT,
		name TEXT,
		birth_year INTEGER,
		goals INTEGER,
		fouls TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_link TEXT NOT NULL,
		seq INTEGER NOT NULL,
		time TEXT,
		quarter INTEGER,
		home_score INTEGER,
		guest_score INTEGER,
		player TEXT,
		event_type TEXT,
		goal_number INTEGER,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_quarter_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_link TEXT NOT NULL,
		quarter INTEGER NOT NULL,
		home INTEGER,
		guest INTEGER,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_officials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_link TEXT NOT NULL,
		role TEXT NOT NULL,
		name TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS game_team_details (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_link TEXT NOT NULL,
		side TEXT NOT NULL,
		name TEXT,
		logo_url TEXT,
		coach TEXT,
		captain TEXT,
		team_leader TEXT,
		assistant TEXT,
		best_player TEXT,
		collected_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_link ON games(game_link)`,
	`CREATE INDEX IF NOT EXISTS idx_table_entries_league ON table_entries(league_id, collected_at)`,
	`CREATE INDEX IF NOT EXISTS idx_scorers_league ON scorers(league_id, collected_at)`,
}

// RawTables lists the collector tables in dependency order
var RawTables = []string{
	"leagues",
	"games",
	"table_entries",
	"scorers",
	"game_lineups",
	"game_events",
	"game_quarter_scores",
	"game_officials",
	"game_team_details",
}
