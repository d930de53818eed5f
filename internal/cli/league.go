package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbliga/wb-liga/internal/filter"
	"github.com/wbliga/wb-liga/internal/league"
	"github.com/wbliga/wb-liga/internal/storage"
)

func newLeaguesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "List the leagues of a season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.scraper().FetchLeagueGroups(cmd.Context(), a.cfg.Season)
			if err != nil {
				return fmt.Errorf("fetching league overview: %w", err)
			}
			return a.write(cmd.OutOrStdout(), groups)
		},
	}
	cmd.Flags().Int("season", 0, "Season year (default: current season)")
	return cmd
}

type leagueOptions struct {
	teams     []string
	venues    []string
	from      string
	to        string
	dates     string
	played    bool
	scheduled bool
	weekends  bool
	sort      string
	fromStore bool
}

func (o *leagueOptions) filter() (*filter.Filter, error) {
	if o.played && o.scheduled {
		return nil, errors.New("--played and --scheduled are mutually exclusive")
	}
	if o.dates != "" && (o.from != "" || o.to != "") {
		return nil, errors.New("--dates cannot be combined with --from or --to")
	}

	f := filter.NewFilter()
	f.Teams = append(f.Teams, o.teams...)
	f.Venues = append(f.Venues, o.venues...)
	f.WeekendsOnly = o.weekends

	switch {
	case o.played:
		f.Status = filter.StatusPlayed
	case o.scheduled:
		f.Status = filter.StatusScheduled
	}

	var err error
	if o.dates != "" {
		if f.DateFrom, f.DateTo, err = filter.ParseDateRange(o.dates); err != nil {
			return nil, err
		}
	}
	if o.from != "" {
		if f.DateFrom, err = filter.ParseDateBound(o.from, false); err != nil {
			return nil, err
		}
	}
	if o.to != "" {
		if f.DateTo, err = filter.ParseDateBound(o.to, true); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func newLeagueCmd(a *app) *cobra.Command {
	o := &leagueOptions{}

	cmd := &cobra.Command{
		Use:   "league <link>",
		Short: "Show schedule, standings and top scorers of a league",
		Long: `Show schedule, standings and top scorers of a league.

The link is the league's navigation link as printed by "wb-liga leagues",
e.g. "League.aspx?Season=2025&LeagueID=123". With --from-store the most
recent collection from the local database is shown instead of fetching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := o.filter()
			if err != nil {
				return err
			}
			order, err := ParseSortOrder(o.sort)
			if err != nil {
				return err
			}

			var l *league.League
			source := "live"
			if o.fromStore {
				source = "store"
				store, err := storage.Open(cmd.Context(), a.cfg.DBPath)
				if err != nil {
					return err
				}
				defer store.Close() // nolint:errcheck

				if l, err = store.LoadLeague(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("loading league: %w", err)
				}
			} else {
				if l, err = a.scraper().FetchLeague(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("fetching league: %w", err)
				}
			}

			games := f.Apply(l.Games)
			sortGames(games, order)

			result := &LeagueResult{
				Name:      l.Name,
				Link:      args[0],
				Source:    source,
				Games:     games,
				Standings: l.Standings,
				Scorers:   l.Scorers,
			}
			if !f.IsEmpty() {
				result.Filter = f.String()
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&o.teams, "team", nil, "Only games of teams containing this text (repeatable)")
	flags.StringSliceVar(&o.venues, "venue", nil, "Only games at venues containing this text (repeatable)")
	flags.StringVar(&o.from, "from", "", "Only games on or after this date (DD.MM.YY)")
	flags.StringVar(&o.to, "to", "", "Only games on or before this date (DD.MM.YY)")
	flags.StringVar(&o.dates, "dates", "", "Date range, e.g. '04.10.25 - 11.10.25' or 'Oktober'")
	flags.BoolVar(&o.played, "played", false, "Only games with a result")
	flags.BoolVar(&o.scheduled, "scheduled", false, "Only games without a result")
	flags.BoolVar(&o.weekends, "weekends", false, "Only games on Saturday or Sunday")
	flags.StringVar(&o.sort, "sort", "date", "Sort games by: date, team or venue")
	flags.BoolVar(&o.fromStore, "from-store", false, "Read the latest collection from the database")
	return cmd
}

func newGameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "game <link>",
		Short: "Show the report of a single game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.scraper().FetchGameDetail(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetching game: %w", err)
			}
			return a.write(cmd.OutOrStdout(), &GameResult{Link: args[0], Detail: d})
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "parse <leagues|league|game> <file>",
		Short:     "Extract a saved page without fetching anything",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"leagues", "league", "game"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading page: %w", err)
			}
			html := string(data)
			p := a.scraper().Parser()

			var result any
			switch args[0] {
			case "leagues":
				result = p.ParseLeagueGroups(html)
			case "league":
				l := p.ParseLeague(html)
				result = &LeagueResult{
					Name:      l.Name,
					Link:      args[1],
					Source:    "file",
					Games:     l.Games,
					Standings: l.Standings,
					Scorers:   l.Scorers,
				}
			case "game":
				result = &GameResult{Link: args[1], Detail: p.ParseGameDetail(html)}
			default:
				return fmt.Errorf("unknown page kind %q (must be leagues, league or game)", args[0])
			}
			return a.write(cmd.OutOrStdout(), result)
		},
	}
}
