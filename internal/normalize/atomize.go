package normalize

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wbliga/wb-liga/internal/league"
)

// atomize fills the atomic columns of rows that do not have them yet
func atomize(ctx context.Context, tx *sql.Tx, s *Summary) error {
	var err error
	if s.ScoresParsed, err = atomizeScores(ctx, tx); err != nil {
		return err
	}
	if s.DatesParsed, err = atomizeDates(ctx, tx); err != nil {
		return err
	}
	if s.TableGoalsParsed, err = atomizeTableGoals(ctx, tx); err != nil {
		return err
	}
	if s.PlayerNamesParsed, err = atomizePlayerNames(ctx, tx); err != nil {
		return err
	}
	if s.AddressesParsed, err = atomizeAddresses(ctx, tx); err != nil {
		return err
	}
	return nil
}

type idText struct {
	id   int64
	text string
}

// selectIDText reads all (id, text) pairs of query before any row is updated
func selectIDText(ctx context.Context, q Querier, query string) ([]idText, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var out []idText
	for rows.Next() {
		var r idText
		if err := rows.Scan(&r.id, &r.text); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func atomizeScores(ctx context.Context, tx *sql.Tx) (int, error) {
	games, err := selectIDText(ctx, tx, `
		SELECT id, result FROM games
		WHERE result IS NOT NULL AND TRIM(result) NOT IN ('', '-') AND home_score IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("selecting results: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE games SET home_score = ?, guest_score = ?, goal_difference = ?, total_goals = ?
		WHERE id = ?`)
	if err != nil {
		return 0, fmt.Errorf("preparing score update: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	parsed := 0
	for _, g := range games {
		home, guest, ok := league.ParseScore(g.text)
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, home, guest, home-guest, home+guest, g.id); err != nil {
			return 0, fmt.Errorf("updating score of game %d: %w", g.id, err)
		}
		parsed++
	}
	return parsed, nil
}

func atomizeDates(ctx context.Context, tx *sql.Tx) (int, error) {
	games, err := selectIDText(ctx, tx, `
		SELECT id, start_time FROM games WHERE start_time IS NOT NULL AND datetime_iso IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("selecting start times: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE games SET
			date_iso = ?, time_iso = ?, datetime_iso = ?,
			start_year = ?, start_month = ?, start_month_name = ?, start_day = ?,
			start_hour = ?, start_minute = ?, start_day_of_week = ?
		WHERE id = ?`)
	if err != nil {
		return 0, fmt.Errorf("preparing date update: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	parsed := 0
	for _, g := range games {
		d, ok := parseDateColumns(g.text)
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			d.DateISO, d.TimeISO, d.DateTimeISO,
			d.Year, d.Month, d.MonthName, d.Day,
			d.Hour, d.Minute, d.DayOfWeek,
			g.id,
		); err != nil {
			return 0, fmt.Errorf("updating date of game %d: %w", g.id, err)
		}
		parsed++
	}
	return parsed, nil
}

func atomizeTableGoals(ctx context.Context, tx *sql.Tx) (int, error) {
	entries, err := selectIDText(ctx, tx, `
		SELECT id, goals FROM table_entries WHERE goals IS NOT NULL AND goals_for IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("selecting table goals: %w", err)
	}

	parsed := 0
	for _, e := range entries {
		goalsFor, goalsAgainst, ok := parseGoals(e.text)
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE table_entries SET goals_for = ?, goals_against = ? WHERE id = ?`,
			goalsFor, goalsAgainst, e.id,
		); err != nil {
			return 0, fmt.Errorf("updating goals of table entry %d: %w", e.id, err)
		}
		parsed++
	}
	return parsed, nil
}

func atomizePlayerNames(ctx context.Context, tx *sql.Tx) (int, error) {
	scorers, err := selectIDText(ctx, tx, `
		SELECT id, name FROM scorers WHERE name IS NOT NULL AND player_name IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("selecting scorer names: %w", err)
	}

	for _, sc := range scorers {
		name, year := parsePlayerName(sc.text)
		if _, err := tx.ExecContext(ctx,
			`UPDATE scorers SET player_name = ?, player_birth_year = ? WHERE id = ?`,
			name, nullInt(year), sc.id,
		); err != nil {
			return 0, fmt.Errorf("updating scorer %d: %w", sc.id, err)
		}
	}
	return len(scorers), nil
}

func atomizeAddresses(ctx context.Context, tx *sql.Tx) (int, error) {
	games, err := selectIDText(ctx, tx, `
		SELECT id, pool_city FROM games WHERE pool_city IS NOT NULL AND pool_city_name IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("selecting pool addresses: %w", err)
	}

	for _, g := range games {
		addr := extractAddress(g.text)
		if _, err := tx.ExecContext(ctx,
			`UPDATE games SET pool_street = ?, pool_postal_code = ?, pool_city_name = ? WHERE id = ?`,
			nullString(addr.Street), nullString(addr.PostalCode), addr.City, g.id,
		); err != nil {
			return 0, fmt.Errorf("updating address of game %d: %w", g.id, err)
		}
	}
	return len(games), nil
}
