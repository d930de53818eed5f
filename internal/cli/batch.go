package cli

import (
	"github.com/spf13/cobra"

	"github.com/wbliga/wb-liga/internal/normalize"
)

func newNormalizeCmd(a *app) *cobra.Command {
	var opts normalize.Options

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize the collected database into a relational schema",
		Long: `Normalize the collected database into a relational schema.

A snapshot of the database is written before anything changes. All stages
run in a single transaction; if any stage fails the database is restored
from the snapshot and the error is reported. Running normalize again on an
already normalized database changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := normalize.New(a.cfg.DBPath, a.cfg.BackupDirectory(), opts)
			summary, err := n.Run(cmd.Context())
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), summary)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.SkipAtomize, "skip-atomize", false, "Skip splitting composite text fields")
	flags.BoolVar(&opts.SkipTeams, "skip-teams", false, "Skip the teams reference table")
	flags.BoolVar(&opts.SkipVenues, "skip-venues", false, "Skip the venues reference table")
	flags.BoolVar(&opts.SkipPlayers, "skip-players", false, "Skip the players reference table")
	flags.BoolVar(&opts.SkipDedupe, "skip-dedupe", false, "Keep rows from older collections")
	flags.BoolVar(&opts.SkipStats, "skip-stats", false, "Skip rebuilding the statistics tables")
	flags.BoolVar(&opts.SkipIndexes, "skip-indexes", false, "Skip creating indexes")
	flags.BoolVar(&opts.Vacuum, "vacuum", false, "Compact the database after a successful run")
	return cmd
}

func newDedupeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Merge duplicate teams, players and venues",
		Long: `Merge duplicate teams, players and venues.

Reference rows sharing a natural key are merged into the oldest one and every
foreign key pointing at a removed row is repointed. Statistics are rebuilt
afterwards. Like normalize, the pass runs against a snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := normalize.New(a.cfg.DBPath, a.cfg.BackupDirectory(), normalize.Options{})
			summary, err := n.MergeDuplicates(cmd.Context())
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), summary)
		},
	}
}
