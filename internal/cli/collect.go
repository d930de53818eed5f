package cli

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wbliga/wb-liga/internal/logger"
	"github.com/wbliga/wb-liga/internal/scraper"
	"github.com/wbliga/wb-liga/internal/storage"
)

type collectOptions struct {
	all       bool
	noDetails bool
}

func newCollectCmd(a *app) *cobra.Command {
	o := &collectOptions{}

	cmd := &cobra.Command{
		Use:   "collect [link...]",
		Short: "Store league pages and game reports in the database",
		Long: `Store league pages and game reports in the database.

Every run appends a new collection; earlier collections are kept. Game
reports are only fetched for games that have none stored yet. Use
"wb-liga normalize" afterwards to derive the relational schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.all == (len(args) > 0) {
				return errors.New("pass league links or --all, not both")
			}
			return a.collect(cmd, args, o)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&o.all, "all", false, "Collect every league of the season")
	flags.BoolVar(&o.noDetails, "no-details", false, "Skip fetching game reports")
	flags.Int("season", 0, "Season year for --all (default: current season)")
	flags.Int("workers", 0, "Concurrent game report fetches")
	return cmd
}

func (a *app) collect(cmd *cobra.Command, links []string, o *collectOptions) error {
	ctx := cmd.Context()
	s := a.scraper()

	if o.all {
		groups, err := s.FetchLeagueGroups(ctx, a.cfg.Season)
		if err != nil {
			return fmt.Errorf("fetching league overview: %w", err)
		}
		for _, g := range groups {
			for _, e := range g.Entries {
				links = append(links, e.Link)
			}
		}
		if len(links) == 0 {
			return errors.New("no leagues found on the overview page")
		}
	}

	store, err := storage.Open(ctx, a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close() // nolint:errcheck

	result := &CollectResult{
		CollectedAt: time.Now().UTC(),
		Database:    store.Path(),
		Leagues:     make([]CollectedLeague, 0, len(links)),
	}

	for _, link := range links {
		collected, err := a.collectLeague(ctx, s, store, link, result.CollectedAt, !o.noDetails)
		if err != nil {
			return err
		}
		result.Leagues = append(result.Leagues, *collected)
	}

	logger.SetGauge("collect.workers", float64(max(a.cfg.Workers, 1)))
	result.Metrics = logger.MetricsSnapshot()
	logger.Info("Collection finished", logger.Fields{
		"leagues": len(result.Leagues),
		"db":      store.Path(),
	})
	logger.Debug("Collection metrics", logger.Fields{"counters": result.Metrics.Counters})
	return a.write(cmd.OutOrStdout(), result)
}

func (a *app) collectLeague(ctx context.Context, s *scraper.Scraper, store *storage.Store, link string, at time.Time, details bool) (*CollectedLeague, error) {
	l, err := s.FetchLeague(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", link, err)
	}
	if err := store.SaveLeague(ctx, l, at); err != nil {
		return nil, err
	}

	collected := &CollectedLeague{
		Link:      link,
		Name:      l.Name,
		Games:     len(l.Games),
		Standings: len(l.Standings),
		Scorers:   len(l.Scorers),
	}
	if !details {
		return collected, nil
	}

	pending, err := store.CollectedGameLinks(ctx, link)
	if err != nil {
		return nil, err
	}

	var saved, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.cfg.Workers, 1))

	for _, gameLink := range pending {
		g.Go(func() error {
			d, err := s.FetchGameDetail(gctx, gameLink)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failed.Add(1)
				logger.Warn("Skipping game report", logger.Fields{
					"link":  gameLink,
					"error": err.Error(),
				})
				return nil
			}
			if err := store.SaveGameDetail(gctx, gameLink, d, at); err != nil {
				return err
			}
			saved.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collecting game reports for %s: %w", link, err)
	}

	collected.Details = int(saved.Load())
	collected.DetailErrors = int(failed.Load())
	logger.AddCounter("collect.details", saved.Load())
	logger.Info("Collected league", logger.Fields{
		"league":  l.Name,
		"games":   collected.Games,
		"details": collected.Details,
		"failed":  collected.DetailErrors,
	})
	return collected, nil
}
