package normalize

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wbliga/wb-liga/internal/logger"
)

// Options selects the stages of a run. The zero value runs everything
// except VACUUM.
type Options struct {
	SkipAtomize bool
	SkipTeams   bool
	SkipVenues  bool
	SkipPlayers bool
	SkipDedupe  bool
	SkipStats   bool
	SkipIndexes bool
	// Vacuum compacts the database after a successful commit
	Vacuum bool
}

// Summary counts the rows touched per stage of a run
type Summary struct {
	RunID      string        `json:"run_id"`
	BackupPath string        `json:"backup_path"`
	Duration   time.Duration `json:"duration"`

	ScoresParsed      int `json:"scores_parsed"`
	DatesParsed       int `json:"dates_parsed"`
	TableGoalsParsed  int `json:"table_goals_parsed"`
	PlayerNamesParsed int `json:"player_names_parsed"`
	AddressesParsed   int `json:"addresses_parsed"`

	TeamsCreated   int `json:"teams_created"`
	VenuesCreated  int `json:"venues_created"`
	PlayersCreated int `json:"players_created"`

	TeamLinks      int `json:"team_links"`
	VenueLinks     int `json:"venue_links"`
	PlayerLinks    int `json:"player_links"`
	BackfillMisses int `json:"backfill_misses"`

	DuplicatesRemoved int  `json:"duplicates_removed"`
	StatsRows         int  `json:"stats_rows"`
	Indexes           int  `json:"indexes"`
	Vacuumed          bool `json:"vacuumed"`

	// Metrics is the process-wide tracker as of the end of the run
	Metrics logger.Snapshot `json:"metrics"`
}

// Backfills is the number of foreign keys set during the run
func (s *Summary) Backfills() int {
	return s.TeamLinks + s.VenueLinks + s.PlayerLinks
}

// Normalizer runs batch jobs against one database file. It needs exclusive
// access to the file for the duration of a run.
type Normalizer struct {
	path      string
	backupDir string
	opts      Options
	now       func() time.Time

	// afterStage is called after every stage; tests use it to inject failures
	afterStage func(stage string) error
}

// New returns a Normalizer for the database at path. Snapshots go to
// backupDir, or next to the database when it is empty.
func New(path, backupDir string, opts Options) *Normalizer {
	return &Normalizer{
		path:      path,
		backupDir: backupDir,
		opts:      opts,
		now:       time.Now,
	}
}

type stage struct {
	name string
	skip bool
	run  func(ctx context.Context, tx *sql.Tx, s *Summary) error
}

func (n *Normalizer) stages() []stage {
	return []stage{
		{"schema", false, func(ctx context.Context, tx *sql.Tx, _ *Summary) error { return ensureSchema(ctx, tx) }},
		{"atomize", n.opts.SkipAtomize, atomize},
		{"teams", n.opts.SkipTeams, linkTeams},
		{"venues", n.opts.SkipVenues, linkVenues},
		{"players", n.opts.SkipPlayers, linkPlayers},
		{"dedupe", n.opts.SkipDedupe, removeDuplicates},
		{"stats", n.opts.SkipStats, rebuildStats},
		{"indexes", n.opts.SkipIndexes, createIndexes},
		{"analyze", false, func(ctx context.Context, tx *sql.Tx, _ *Summary) error {
			if _, err := tx.ExecContext(ctx, "ANALYZE"); err != nil {
				return fmt.Errorf("analyzing: %w", err)
			}
			return nil
		}},
	}
}

// Run snapshots the database and executes all selected stages in one
// transaction. On failure the snapshot is restored and the error wraps
// ErrRestored (or ErrSnapshot when not even the snapshot could be taken).
func (n *Normalizer) Run(ctx context.Context) (*Summary, error) {
	start := n.now()
	summary := &Summary{RunID: uuid.NewString()}
	fields := logger.Fields{"run_id": summary.RunID, "db": n.path}

	logger.Info("Normalizer run started", fields)

	store, snap, err := WithSnapshot(ctx, n.path, n.backupDir, summary.RunID, start,
		func(ctx context.Context, tx *sql.Tx) error {
			for _, st := range n.stages() {
				if st.skip {
					logger.Debug("Stage skipped", logger.Fields{"run_id": summary.RunID, "stage": st.name})
					continue
				}
				stageStart := time.Now()
				if err := st.run(ctx, tx, summary); err != nil {
					return fmt.Errorf("stage %s: %w", st.name, err)
				}
				logger.RecordTiming("normalize.stage."+st.name, time.Since(stageStart))
				if n.afterStage != nil {
					if err := n.afterStage(st.name); err != nil {
						return fmt.Errorf("stage %s: %w", st.name, err)
					}
				}
			}
			return nil
		})
	if snap != nil {
		summary.BackupPath = snap.Path
	}
	if err != nil {
		logger.IncrCounter("normalize.failures")
		logger.Error("Normalizer run failed", fields, err)
		summary.Metrics = logger.MetricsSnapshot()
		return summary, err
	}
	defer store.Close() // nolint:errcheck

	if n.opts.Vacuum {
		if _, err := store.DB().ExecContext(ctx, "VACUUM"); err != nil {
			// the run is committed; a failed VACUUM leaves a valid but larger file
			logger.Warn("VACUUM failed", logger.Fields{"run_id": summary.RunID, "error": err.Error()})
		} else {
			summary.Vacuumed = true
		}
	}

	summary.Duration = n.now().Sub(start)
	logger.IncrCounter("normalize.runs")
	logger.SetGauge("normalize.last_run_seconds", summary.Duration.Seconds())
	summary.Metrics = logger.MetricsSnapshot()
	logger.Debug("Normalizer metrics", logger.Fields{
		"run_id":   summary.RunID,
		"counters": summary.Metrics.Counters,
	})
	logger.Info("Normalizer run completed", logger.Fields{
		"run_id":             summary.RunID,
		"backup":             summary.BackupPath,
		"teams_created":      summary.TeamsCreated,
		"players_created":    summary.PlayersCreated,
		"venues_created":     summary.VenuesCreated,
		"backfills":          summary.Backfills(),
		"backfill_misses":    summary.BackfillMisses,
		"duplicates_removed": summary.DuplicatesRemoved,
		"duration_ms":        summary.Duration.Milliseconds(),
	})
	return summary, nil
}

// rowsAffected returns the affected row count of res as an int
func rowsAffected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
