package normalize

import (
	"context"
	"database/sql"
	"fmt"
)

// duplicateKeys lists the composite natural key of every fact table.
// Of rows sharing a key the most recently inserted one survives.
var duplicateKeys = []struct {
	table string
	key   string
}{
	{"games", "league_id, start_time, home_team, guest_team"},
	{"table_entries", "league_id, team"},
	{"scorers", "league_id, COALESCE(player_name, name), team"},
	{"game_lineups", "game_link, side, name, number"},
	{"game_events", "game_link, seq"},
	{"game_quarter_scores", "game_link, quarter"},
	{"game_officials", "game_link, role"},
	{"game_team_details", "game_link, side"},
}

func removeDuplicates(ctx context.Context, tx *sql.Tx, s *Summary) error {
	for _, d := range duplicateKeys {
		res, err := tx.ExecContext(ctx, fmt.Sprintf(
			`DELETE FROM %[1]s WHERE id NOT IN (SELECT MAX(id) FROM %[1]s GROUP BY %[2]s)`,
			d.table, d.key,
		))
		if err != nil {
			return fmt.Errorf("removing duplicate %s: %w", d.table, err)
		}
		s.DuplicatesRemoved += rowsAffected(res)
	}
	return nil
}
