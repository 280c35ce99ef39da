package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/fgo-events/internal/calendar"
	"github.com/pfrederiksen/fgo-events/internal/catalog"
	"github.com/pfrederiksen/fgo-events/internal/event"
	"github.com/pfrederiksen/fgo-events/internal/logger"
	"github.com/pfrederiksen/fgo-events/internal/scraper"
	"github.com/pfrederiksen/fgo-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const cacheFile = "catalog.json"

// logLevels are the values accepted by --loglevel
var logLevels = map[string]logger.Level{
	"debug": logger.LevelDebug,
	"info":  logger.LevelInfo,
}

var (
	flagLogLevel string
	flagOutput   string
	flagCacheDir string
	flagRefresh  bool
	flagICS      string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fgo-events",
		Short: "Collect FGO event periods and event items from the news site",
		Long: `A CLI tool that crawls the Fate/Grand Order news archive, extracts the
period and quest items of every event announcement, and writes them to a JSON file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(flagLogLevel)
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(level, os.Stderr))
			return nil
		},
		RunE: runFetch,
	}

	cmd.Flags().StringVarP(&flagLogLevel, "loglevel", "l", "info", "Log level: debug or info")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", storage.DefaultOutputFile, "Output JSON file")
	cmd.Flags().StringVar(&flagCacheDir, "cache-dir", "", "Keep downloaded catalogs in this directory, e.g. ~/.cache/fgo-events")
	cmd.Flags().StringVar(&flagICS, "ics", "", "Also write event periods as an iCalendar file")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Download the catalogs even if the cache is fresh")

	return cmd
}

// runFetch is the main command logic
func runFetch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	client := catalog.NewClient()
	if flagCacheDir != "" {
		cache, err := loadCache(flagCacheDir, flagRefresh)
		if err != nil {
			return err
		}
		client.WithCache(cache)
	}

	logger.Info("Loading item catalogs", nil)
	index, err := client.Build()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	previous := loadPrevious(flagOutput)

	logger.Info("Walking news archive", logger.Fields{"url": scraper.NewsURL})
	records, err := scraper.New(index).FetchEvents()
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	if err := storage.Save(flagOutput, records); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}

	if flagICS != "" {
		if err := writeICS(flagICS, records); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
	}

	summary := NewSummary(records, previous, flagOutput, time.Since(start))
	logger.Info("Run complete", logger.Fields{
		"events":  summary.Events,
		"new":     summary.New,
		"output":  flagOutput,
		"metrics": logger.MetricsSnapshot(),
	})

	if err := WriteSummary(cmd.OutOrStdout(), summary, flagLogLevel == "debug"); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// parseLogLevel maps a --loglevel value to a logger level
func parseLogLevel(name string) (logger.Level, error) {
	level, ok := logLevels[name]
	if !ok {
		return "", fmt.Errorf("invalid log level %q: must be debug or info", name)
	}
	return level, nil
}

// loadPrevious reads the output of the last run so new events can be reported.
// A missing or unreadable file counts as no previous run.
func loadPrevious(path string) []*event.Record {
	previous, err := storage.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Ignoring previous output", logger.Fields{"path": path, "error": err.Error()})
		}
		return nil
	}
	return previous
}

// writeICS writes the calendar feed for records to path
func writeICS(path string, records []*event.Record) error {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(calendar.GenerateICS(records, time.Now())), 0644)
}

// loadCache opens the catalog cache in dir. refresh starts from an empty cache.
func loadCache(dir string, refresh bool) (*catalog.Cache, error) {
	dir, err := storage.ExpandPath(dir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, cacheFile)

	if refresh {
		return catalog.NewCache(path), nil
	}

	cache, err := catalog.LoadCache(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog cache: %w", err)
	}
	return cache, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
