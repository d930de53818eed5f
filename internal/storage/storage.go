package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wbliga/wb-liga/internal/league"
)

// TimeFormat is how collection timestamps are stored
const TimeFormat = time.RFC3339Nano

// ErrNotFound is returned when a league has never been collected
var ErrNotFound = errors.New("not found")

// Store is the raw fact database
type Store struct {
	db   *sql.DB
	path string
}

// DSN builds the connection string used for every connection to path:
// enforced foreign keys, WAL journal, fully synchronous commits, a busy
// timeout and transactions that take the write lock on BEGIN.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(FULL)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_txlock", "immediate")
	return "file:" + path + "?" + q.Encode()
}

// Open opens (and creates if needed) the database at path and its raw tables
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one writer; also keeps per-connection pragmas consistent
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.CreateTables(ctx); err != nil {
		db.Close() // nolint:errcheck
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying handle for batch jobs
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file
func (s *Store) Path() string { return s.path }

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables creates missing raw tables
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range rawSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// SaveLeague appends one collection of a league page
func (s *Store) SaveLeague(ctx context.Context, l *league.League, collectedAt time.Time) error {
	if l.Link == "" {
		return errors.New("saving league: missing link")
	}
	at := collectedAt.UTC().Format(TimeFormat)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO leagues (id, name, season_id, collected_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = COALESCE(NULLIF(excluded.name, ''), leagues.name),
				season_id = COALESCE(excluded.season_id, leagues.season_id),
				collected_at = excluded.collected_at`,
			l.Link, l.Name, seasonOf(l.Link), at,
		); err != nil {
			return fmt.Errorf("saving league: %w", err)
		}

		games, err := tx.PrepareContext(ctx, `
			INSERT INTO games (league_id, natural_key, start_time, home_team, guest_team,
				home_logo, guest_logo, venue, game_link, result, collected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing games: %w", err)
		}
		defer games.Close() // nolint:errcheck

		for _, g := range l.Games {
			if _, err := games.ExecContext(ctx,
				l.Link, league.GenerateGameID(l.Link, g.Start, g.Home, g.Guest),
				g.Start, g.Home, g.Guest, nullString(g.HomeLogo), nullString(g.GuestLogo),
				g.Venue, nullString(g.Link), g.Result, at,
			); err != nil {
				return fmt.Errorf("saving game: %w", err)
			}
		}

		entries, err := tx.PrepareContext(ctx, `
			INSERT INTO table_entries (league_id, rank, team, info, logo_url, games, wins, draws,
				losses, goals, goal_difference, points, form, collected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing table entries: %w", err)
		}
		defer entries.Close() // nolint:errcheck

		for _, r := range l.Standings {
			if _, err := entries.ExecContext(ctx,
				l.Link, r.Rank, r.Team, nullString(r.Info), nullString(r.LogoURL),
				r.Games, r.Wins, r.Draws, r.Losses, r.Goals, r.GoalDifference, r.Points,
				nullString(encodeForm(r.Form)), at,
			); err != nil {
				return fmt.Errorf("saving table entry: %w", err)
			}
		}

		scorers, err := tx.PrepareContext(ctx, `
			INSERT INTO scorers (league_id, rank, name, team, goals, games, collected_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing scorers: %w", err)
		}
		defer scorers.Close() // nolint:errcheck

		for _, r := range l.Scorers {
			if _, err := scorers.ExecContext(ctx, l.Link, r.Rank, r.Name, r.Team, r.Goals, r.Games, at); err != nil {
				return fmt.Errorf("saving scorer: %w", err)
			}
		}

		// game pages are fetched once per link, so new schedule rows inherit
		// what an earlier collection already knows about the game
		if _, err := tx.ExecContext(ctx, `
			UPDATE games SET (`+detailColumns+`) = (
				SELECT `+detailColumns+` FROM games p
				WHERE p.game_link = games.game_link AND p.id < games.id AND p.game_detail_at IS NOT NULL
				ORDER BY p.id DESC LIMIT 1)
			WHERE league_id = ? AND collected_at = ? AND game_link IS NOT NULL
			  AND game_detail_at IS NULL
			  AND EXISTS (SELECT 1 FROM games p
				WHERE p.game_link = games.game_link AND p.id < games.id AND p.game_detail_at IS NOT NULL)`,
			l.Link, at,
		); err != nil {
			return fmt.Errorf("carrying game details: %w", err)
		}
		return nil
	})
}

// detailColumns are the schedule columns filled from a game page
const detailColumns = `pool_name, pool_city, google_maps_link, game_number, play_kind, final_score,
	scoring_system, notes, video_link, protocol_link, end_time, organizer, game_detail_at`

// SaveGameDetail appends one collection of a game page. Venue and game
// metadata are copied onto every stored schedule row with the same link.
func (s *Store) SaveGameDetail(ctx context.Context, link string, d *league.GameDetail, collectedAt time.Time) error {
	if link == "" {
		return errors.New("saving game detail: missing link")
	}
	at := collectedAt.UTC().Format(TimeFormat)

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE games SET
				pool_name = ?, pool_city = ?, google_maps_link = ?,
				game_number = ?, play_kind = ?, final_score = ?, scoring_system = ?,
				notes = ?, video_link = ?, protocol_link = ?, end_time = ?, organizer = ?,
				game_detail_at = ?
			WHERE game_link = ?`,
			nullString(d.Venue.PoolName), nullString(d.Venue.City), nullString(d.Venue.MapsLink),
			nullString(d.GameID), nullString(d.PlayKind), nullString(d.FinalScore), d.ScoringSystem,
			d.Notes, d.VideoLink, d.ProtocolLink, d.EndTime, d.Organizer,
			at, link,
		); err != nil {
			return fmt.Errorf("updating game: %w", err)
		}

		sides := []struct {
			side string
			team league.TeamDetail
		}{
			{"home", d.Home},
			{"guest", d.Guest},
		}
		for _, sd := range sides {
			t := sd.team
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO game_team_details (game_link, side, name, logo_url, coach, captain,
					team_leader, assistant, best_player, collected_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				link, sd.side, t.Name, nullString(t.LogoURL), t.Coach, t.Captain,
				t.TeamLeader, t.Assistant, t.BestPlayer, at,
			); err != nil {
				return fmt.Errorf("saving team detail: %w", err)
			}

			for _, p := range t.Players {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO game_lineups (game_link, side, team, number, name, birth_year, goals, fouls, collected_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					link, sd.side, t.Name, p.Number, p.Name, nullYear(p.BirthYear), p.Goals,
					nullString(encodeFouls(p.Fouls)), at,
				); err != nil {
					return fmt.Errorf("saving lineup: %w", err)
				}
			}
		}

		for i, ev := range d.Events {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO game_events (game_link, seq, time, quarter, home_score, guest_score,
					player, event_type, goal_number, collected_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				link, i, ev.Time, ev.Quarter, ev.HomeScore, ev.GuestScore,
				ev.Player, ev.Type, ev.GoalNumber, at,
			); err != nil {
				return fmt.Errorf("saving event: %w", err)
			}
		}

		for _, q := range d.QuarterScores {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO game_quarter_scores (game_link, quarter, home, guest, collected_at)
				VALUES (?, ?, ?, ?, ?)`,
				link, q.Quarter, q.Home, q.Guest, at,
			); err != nil {
				return fmt.Errorf("saving quarter score: %w", err)
			}
		}

		for _, role := range d.Officials.Roles() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO game_officials (game_link, role, name, collected_at) VALUES (?, ?, ?, ?)`,
				link, role[0], role[1], at,
			); err != nil {
				return fmt.Errorf("saving official: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() // nolint:errcheck
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// seasonOf extracts the Season query parameter of a league link
func seasonOf(link string) any {
	_, query, ok := strings.Cut(link, "?")
	if !ok {
		return nil
	}
	values, err := url.ParseQuery(query)
	if err != nil || values.Get("Season") == "" {
		return nil
	}
	return values.Get("Season")
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullYear(s string) any {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return year
}

func encodeForm(form []league.FormResult) string {
	parts := make([]string, len(form))
	for i, f := range form {
		parts[i] = string(f)
	}
	return strings.Join(parts, "")
}

func decodeForm(s string) []league.FormResult {
	if s == "" {
		return nil
	}
	form := make([]league.FormResult, 0, len(s))
	for _, r := range s {
		form = append(form, league.FormResult(string(r)))
	}
	return form
}

// encodeFouls renders fouls as "1:A,3:E"
func encodeFouls(fouls []league.PersonalFoul) string {
	parts := make([]string, len(fouls))
	for i, f := range fouls {
		parts[i] = strconv.Itoa(f.Quarter) + ":" + f.FoulType
	}
	return strings.Join(parts, ",")
}
