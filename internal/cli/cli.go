package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wbliga/wb-liga/internal/config"
	"github.com/wbliga/wb-liga/internal/logger"
	"github.com/wbliga/wb-liga/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries the state shared by all commands of one invocation
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configFile string
	envFile    string
	formatFlag string
	format     OutputFormat
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	cmd := &cobra.Command{
		Use:   "wb-liga",
		Short: "Water polo league schedules, tables and game reports",
		Long: `A CLI tool for the DSV water polo league pages.
Shows league overviews, schedules, standings, top scorers and game reports,
collects them into a local SQLite database and normalizes that database
into a relational schema.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: ./wb-liga.yaml or ~/.config/wb-liga/wb-liga.yaml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "Env file with WBLIGA_* settings")
	pf.StringVar(&a.formatFlag, "format", "text", "Output format: text or json")
	pf.String("db", "", "SQLite database path")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: json or text")
	pf.String("base-url", "", "Where requests are sent (the origin or a proxy in front of it)")

	a.bindFlags(pf, map[string]string{
		"db":         config.KeyDBPath,
		"log-level":  config.KeyLogLevel,
		"log-format": config.KeyLogFormat,
		"base-url":   config.KeyBaseURL,
	})

	cmd.AddCommand(
		newLeaguesCmd(a),
		newLeagueCmd(a),
		newGameCmd(a),
		newParseCmd(a),
		newCollectCmd(a),
		newNormalizeCmd(a),
		newDedupeCmd(a),
	)

	return cmd
}

// commandKeys maps flags that several subcommands define to their config keys.
// Only the running command's flags are bound, since viper keeps one flag per key.
var commandKeys = map[string]string{
	"season":  config.KeySeason,
	"workers": config.KeyWorkers,
}

// setup loads the configuration and installs the logger before any command runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.bindFlags(cmd.LocalFlags(), commandKeys)

	format, err := ParseOutputFormat(a.formatFlag)
	if err != nil {
		return err
	}
	a.format = format

	cfg, err := config.Load(a.v, a.configFile, a.envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.NewWithFormat(level, cmd.ErrOrStderr(), cfg.LogFormat))
	logger.Debug("Configuration loaded", logger.Fields{
		"base_url": cfg.BaseURL,
		"db":       cfg.DBPath,
		"config":   a.v.ConfigFileUsed(),
	})
	return nil
}

// bindFlags makes flags override the config keys they are mapped to
func (a *app) bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if f := fs.Lookup(name); f != nil {
			a.v.BindPFlag(key, f) // nolint:errcheck
		}
	}
}

func (a *app) scraper() *scraper.Scraper {
	fetcher := scraper.NewHTTPFetcher(a.cfg.BaseURL,
		scraper.WithUserAgent(a.cfg.UserAgent),
		scraper.WithRetries(a.cfg.Retries),
		scraper.WithTimeout(a.cfg.Timeout),
	)
	return scraper.New(fetcher, scraper.NewParser(a.cfg.Origin, a.cfg.ModulePath))
}

func (a *app) write(w io.Writer, result any) error {
	if err := WriteOutput(w, result, a.format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
