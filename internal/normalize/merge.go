package normalize

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wbliga/wb-liga/internal/logger"
)

// MergeSummary counts what a merge pass changed
type MergeSummary struct {
	RunID         string `json:"run_id"`
	BackupPath    string `json:"backup_path"`
	TeamsMerged   int    `json:"teams_merged"`
	PlayersMerged int    `json:"players_merged"`
	VenuesMerged  int    `json:"venues_merged"`
	RowsRepointed int    `json:"rows_repointed"`

	Metrics logger.Snapshot `json:"metrics"`
}

type reference struct {
	column string
	table  string
}

// mergeTargets describe how reference rows collide. match is a condition
// over the aliases k (candidate survivor) and r (row being checked).
var mergeTargets = []struct {
	table string
	match string
	refs  []reference
}{
	{
		table: "teams",
		match: "TRIM(k.name) = TRIM(r.name)",
		refs:  []reference{{"home_team_id", "games"}, {"guest_team_id", "games"}},
	},
	{
		table: "players",
		match: "k.name IS r.name AND k.birth_year IS r.birth_year",
		refs:  []reference{{"player_id", "scorers"}, {"player_id", "game_lineups"}},
	},
	{
		table: "venues",
		match: "k.pool_name IS r.pool_name AND k.city IS r.city",
		refs:  []reference{{"venue_id", "games"}},
	},
}

// MergeDuplicates collapses reference rows that share a natural key onto the
// lowest id, repoints every foreign key to the survivor and deletes the rest.
// Statistics are rebuilt afterwards. Same snapshot protocol as Run.
func (n *Normalizer) MergeDuplicates(ctx context.Context) (*MergeSummary, error) {
	summary := &MergeSummary{RunID: uuid.NewString()}
	fields := logger.Fields{"run_id": summary.RunID, "db": n.path}
	logger.Info("Merge pass started", fields)

	store, snap, err := WithSnapshot(ctx, n.path, n.backupDir, summary.RunID, n.now(),
		func(ctx context.Context, tx *sql.Tx) error {
			if err := ensureSchema(ctx, tx); err != nil {
				return err
			}
			// rebuilt below; survivors would collide on the primary key
			if _, err := tx.ExecContext(ctx, `DELETE FROM team_league_stats`); err != nil {
				return fmt.Errorf("clearing team stats: %w", err)
			}

			for _, t := range mergeTargets {
				merged, repointed, err := mergeTable(ctx, tx, t.table, t.match, t.refs)
				if err != nil {
					return err
				}
				summary.RowsRepointed += repointed
				switch t.table {
				case "teams":
					summary.TeamsMerged = merged
				case "players":
					summary.PlayersMerged = merged
				case "venues":
					summary.VenuesMerged = merged
				}
			}
			return rebuildStats(ctx, tx, &Summary{RunID: summary.RunID})
		})
	if snap != nil {
		summary.BackupPath = snap.Path
	}
	if err != nil {
		logger.Error("Merge pass failed", fields, err)
		summary.Metrics = logger.MetricsSnapshot()
		return summary, err
	}
	store.Close() // nolint:errcheck

	logger.Info("Merge pass completed", logger.Fields{
		"run_id":         summary.RunID,
		"teams_merged":   summary.TeamsMerged,
		"players_merged": summary.PlayersMerged,
		"venues_merged":  summary.VenuesMerged,
		"rows_repointed": summary.RowsRepointed,
	})
	logger.AddCounter("normalize.merged", int64(summary.TeamsMerged+summary.PlayersMerged+summary.VenuesMerged))
	summary.Metrics = logger.MetricsSnapshot()
	return summary, nil
}

func mergeTable(ctx context.Context, tx *sql.Tx, table, match string, refs []reference) (merged, repointed int, err error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`
		SELECT r.id, (SELECT MIN(k.id) FROM %[1]s k WHERE %[2]s) AS keep
		FROM %[1]s r
		ORDER BY r.id`, table, match))
	if err != nil {
		return 0, 0, fmt.Errorf("finding duplicate %s: %w", table, err)
	}

	type pair struct{ drop, keep int64 }
	var pairs []pair
	for rows.Next() {
		var id int64
		var keep sql.NullInt64
		if err := rows.Scan(&id, &keep); err != nil {
			rows.Close() // nolint:errcheck
			return 0, 0, fmt.Errorf("scanning %s: %w", table, err)
		}
		if keep.Valid && keep.Int64 != id {
			pairs = append(pairs, pair{drop: id, keep: keep.Int64})
		}
	}
	rows.Close() // nolint:errcheck
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("reading %s: %w", table, err)
	}

	for _, p := range pairs {
		for _, ref := range refs {
			res, err := tx.ExecContext(ctx,
				fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`, ref.table, ref.column, ref.column),
				p.keep, p.drop,
			)
			if err != nil {
				return 0, 0, fmt.Errorf("repointing %s.%s: %w", ref.table, ref.column, err)
			}
			repointed += rowsAffected(res)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), p.drop); err != nil {
			return 0, 0, fmt.Errorf("deleting duplicate %s %d: %w", table, p.drop, err)
		}
		merged++
	}
	return merged, repointed, nil
}
