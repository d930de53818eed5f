package normalize

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/wbliga/wb-liga/internal/logger"
)

// linkTeams derives teams from the schedule and backfills home/guest team ids
func linkTeams(ctx context.Context, tx *sql.Tx, s *Summary) error {
	names, err := selectStrings(ctx, tx, `
		SELECT TRIM(home_team) FROM games WHERE home_team IS NOT NULL AND home_team_id IS NULL
		UNION
		SELECT TRIM(guest_team) FROM games WHERE guest_team IS NOT NULL AND guest_team_id IS NULL`)
	if err != nil {
		return fmt.Errorf("selecting team names: %w", err)
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		id, created, err := FindOrCreate(ctx, tx, TeamKey{Name: name})
		if err != nil {
			return err
		}
		if created {
			s.TeamsCreated++
		}

		for _, side := range []string{"home", "guest"} {
			res, err := tx.ExecContext(ctx, fmt.Sprintf(
				`UPDATE games SET %[1]s_team_id = ? WHERE TRIM(%[1]s_team) = ? AND %[1]s_team_id IS NULL`, side),
				id, name,
			)
			if err != nil {
				return fmt.Errorf("linking %s team %q: %w", side, name, err)
			}
			s.TeamLinks += rowsAffected(res)
		}
	}

	return countMisses(ctx, tx, s, "teams", `
		SELECT COUNT(*) FROM games
		WHERE (home_team IS NOT NULL AND home_team_id IS NULL)
		   OR (guest_team IS NOT NULL AND guest_team_id IS NULL)`)
}

// linkVenues derives venues from the pool data copied onto games by the
// detail collector and backfills venue ids
func linkVenues(ctx context.Context, tx *sql.Tx, s *Summary) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT pool_name, pool_city, MAX(google_maps_link) FROM games
		WHERE pool_name IS NOT NULL AND TRIM(pool_name) != '' AND venue_id IS NULL
		GROUP BY pool_name, pool_city
		ORDER BY pool_name, pool_city`)
	if err != nil {
		return fmt.Errorf("selecting pools: %w", err)
	}

	type pool struct {
		name     string
		city     sql.NullString
		mapsLink sql.NullString
	}
	var pools []pool
	for rows.Next() {
		var p pool
		if err := rows.Scan(&p.name, &p.city, &p.mapsLink); err != nil {
			rows.Close() // nolint:errcheck
			return fmt.Errorf("scanning pool: %w", err)
		}
		pools = append(pools, p)
	}
	rows.Close() // nolint:errcheck
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading pools: %w", err)
	}

	for _, p := range pools {
		addr := extractAddress(p.city.String)
		id, created, err := FindOrCreate(ctx, tx, VenueKey{
			PoolName:       strings.TrimSpace(p.name),
			City:           addr.City,
			Street:         addr.Street,
			PostalCode:     addr.PostalCode,
			FullAddress:    strings.TrimSpace(p.city.String),
			GoogleMapsLink: p.mapsLink.String,
		})
		if err != nil {
			return err
		}
		if created {
			s.VenuesCreated++
		}

		var city any
		if p.city.Valid {
			city = p.city.String
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE games SET venue_id = ? WHERE pool_name = ? AND pool_city IS ? AND venue_id IS NULL`,
			id, p.name, city,
		)
		if err != nil {
			return fmt.Errorf("linking venue %q: %w", p.name, err)
		}
		s.VenueLinks += rowsAffected(res)
	}

	return countMisses(ctx, tx, s, "venues", `
		SELECT COUNT(*) FROM games WHERE pool_name IS NOT NULL AND venue_id IS NULL`)
}

// linkPlayers derives players from scorer lists and game rosters and
// backfills player ids on both
func linkPlayers(ctx context.Context, tx *sql.Tx, s *Summary) error {
	names, err := selectStrings(ctx, tx, `
		SELECT DISTINCT name FROM scorers WHERE name IS NOT NULL AND player_id IS NULL ORDER BY name`)
	if err != nil {
		return fmt.Errorf("selecting scorer names: %w", err)
	}

	for _, raw := range names {
		name, year := parsePlayerName(raw)
		if name == "" {
			continue
		}
		id, created, err := FindOrCreate(ctx, tx, PlayerKey{Name: name, BirthYear: year})
		if err != nil {
			return err
		}
		if created {
			s.PlayersCreated++
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE scorers SET player_id = ? WHERE name = ? AND player_id IS NULL`, id, raw)
		if err != nil {
			return fmt.Errorf("linking scorer %q: %w", raw, err)
		}
		s.PlayerLinks += rowsAffected(res)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT DISTINCT name, birth_year FROM game_lineups
		WHERE name IS NOT NULL AND player_id IS NULL
		ORDER BY name, birth_year`)
	if err != nil {
		return fmt.Errorf("selecting roster names: %w", err)
	}
	type rosterName struct {
		name string
		year sql.NullInt64
	}
	var roster []rosterName
	for rows.Next() {
		var r rosterName
		if err := rows.Scan(&r.name, &r.year); err != nil {
			rows.Close() // nolint:errcheck
			return fmt.Errorf("scanning roster name: %w", err)
		}
		roster = append(roster, r)
	}
	rows.Close() // nolint:errcheck
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading roster names: %w", err)
	}

	for _, r := range roster {
		name, year := parsePlayerName(r.name)
		if r.year.Valid {
			year = int(r.year.Int64)
		}
		if name == "" {
			continue
		}
		id, created, err := FindOrCreate(ctx, tx, PlayerKey{Name: name, BirthYear: year})
		if err != nil {
			return err
		}
		if created {
			s.PlayersCreated++
		}

		var birth any
		if r.year.Valid {
			birth = r.year.Int64
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE game_lineups SET player_id = ? WHERE name = ? AND birth_year IS ? AND player_id IS NULL`,
			id, r.name, birth,
		)
		if err != nil {
			return fmt.Errorf("linking roster player %q: %w", r.name, err)
		}
		s.PlayerLinks += rowsAffected(res)
	}

	return countMisses(ctx, tx, s, "players", `
		SELECT
			(SELECT COUNT(*) FROM scorers WHERE name IS NOT NULL AND player_id IS NULL) +
			(SELECT COUNT(*) FROM game_lineups WHERE name IS NOT NULL AND player_id IS NULL)`)
}

// countMisses records fact rows left without a reference as a warning
func countMisses(ctx context.Context, tx *sql.Tx, s *Summary, reference, query string) error {
	var misses int
	if err := tx.QueryRowContext(ctx, query).Scan(&misses); err != nil {
		return fmt.Errorf("counting unlinked %s: %w", reference, err)
	}
	if misses == 0 {
		return nil
	}

	s.BackfillMisses += misses
	logger.AddCounter("normalize.backfill_misses", int64(misses))
	logger.Warn("Fact rows left without reference", logger.Fields{
		"run_id":    s.RunID,
		"reference": reference,
		"rows":      misses,
	})
	return nil
}

func selectStrings(ctx context.Context, q Querier, query string) ([]string, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
