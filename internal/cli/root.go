// Package cli implements the strata CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stratadoc/strata/internal/auth"
	"github.com/stratadoc/strata/internal/cloudsync"
	"github.com/stratadoc/strata/internal/config"
	"github.com/stratadoc/strata/internal/llm"
	"github.com/stratadoc/strata/internal/store"
	"github.com/stratadoc/strata/internal/workspace"
)

var (
	dbPath    string
	actorFlag string
	verbose   bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Version history for academic writing projects",
	Long:  "Storyboard projects into sections, record every change as a diffable version, and restore any point in time. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $STRATA_DB or ~/.strata/strata.db)")
	RootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Actor id recorded in history (default: $STRATA_ACTOR)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// env bundles everything a command needs.
type env struct {
	cfg      *config.Config
	db       *store.DB
	ws       *workspace.Workspace
	timeline *store.Timeline
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if actorFlag != "" {
		cfg.Actor = actorFlag
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	projects := store.NewProjectStore(db)
	vlog := store.NewVersionLog(db)

	var syncer cloudsync.Syncer = cloudsync.Noop{}
	if cfg.SyncDir != "" {
		syncer = cloudsync.NewDir(cfg.SyncDir)
	}
	gen := llm.New(llm.Config{Endpoint: cfg.OllamaURL, Model: cfg.OllamaModel})

	return &env{
		cfg:      cfg,
		db:       db,
		ws:       workspace.New(projects, vlog, auth.NewStatic(cfg.Actor), gen, syncer, logger),
		timeline: store.NewTimeline(db),
	}, nil
}

func (e *env) Close() {
	e.db.Close()
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
