package normalize

import (
	"context"
	"database/sql"
	"fmt"
)

// rebuildStats recomputes the statistics tables from the enriched facts.
// The tables carry no timestamps so that rebuilding unchanged facts yields
// identical rows.
func rebuildStats(ctx context.Context, tx *sql.Tx, s *Summary) error {
	stmts := []struct {
		name  string
		query string
		count bool
	}{
		{"clearing league stats", `DELETE FROM league_stats`, false},
		{"computing league stats", `
			INSERT INTO league_stats (league_id, season_id, total_games, finished_games,
				total_goals, avg_goals_per_game, highest_total)
			SELECT
				l.id,
				l.season_id,
				COUNT(g.id),
				COUNT(g.home_score),
				COALESCE(SUM(g.total_goals), 0),
				AVG(g.total_goals),
				MAX(g.total_goals)
			FROM leagues l
			LEFT JOIN games g ON g.league_id = l.id
			GROUP BY l.id`, true},
		{"clearing team stats", `DELETE FROM team_league_stats`, false},
		{"computing team stats", `
			INSERT INTO team_league_stats (team_id, league_id, games_played, wins, draws, losses,
				home_games, home_wins, away_games, away_wins, goals_scored, goals_conceded, goal_difference)
			SELECT
				team_id,
				league_id,
				COUNT(*),
				SUM(own > other),
				SUM(own = other),
				SUM(own < other),
				SUM(is_home),
				SUM(is_home AND own > other),
				SUM(NOT is_home),
				SUM(NOT is_home AND own > other),
				SUM(own),
				SUM(other),
				SUM(own) - SUM(other)
			FROM (
				SELECT home_team_id AS team_id, league_id, home_score AS own, guest_score AS other, 1 AS is_home
				FROM games WHERE home_team_id IS NOT NULL AND home_score IS NOT NULL AND league_id IS NOT NULL
				UNION ALL
				SELECT guest_team_id, league_id, guest_score, home_score, 0
				FROM games WHERE guest_team_id IS NOT NULL AND home_score IS NOT NULL AND league_id IS NOT NULL
			)
			GROUP BY team_id, league_id`, true},
	}

	s.StatsRows = 0
	for _, st := range stmts {
		res, err := tx.ExecContext(ctx, st.query)
		if err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
		if st.count {
			s.StatsRows += rowsAffected(res)
		}
	}
	return nil
}

func createIndexes(ctx context.Context, tx *sql.Tx, s *Summary) error {
	for _, stmt := range derivedIndexes {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
		s.Indexes++
	}
	return nil
}
