package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/graphnav"
	"github.com/meikuraledutech/graphnav/config"
	"github.com/meikuraledutech/graphnav/logging"
	"github.com/meikuraledutech/graphnav/postgres"
	"github.com/meikuraledutech/graphnav/sqlite"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...commands.Version=v1.2.3".
var Version = "dev"

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "graphnav",
		Short: "Directed graph reachability service",
		Long: `graphnav answers "which nodes can I reach from here?" over a graph
stored in PostgreSQL or SQLite, and draws the graph as ASCII trees.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")

	rt := &session{cfgFile: &cfgFile}
	root.AddCommand(
		newServeCmd(rt),
		newMigrateCmd(rt),
		newSeedCmd(rt),
		newReachCmd(rt),
		newRenderCmd(rt),
		newConfigCmd(rt),
	)
	return root
}

// session lazily loads what a subcommand needs from the --config flag.
type session struct {
	cfgFile *string

	cfg    *config.Config
	logger *slog.Logger
	store  graphnav.Store
}

func (rt *session) config() (*config.Config, error) {
	if rt.cfg != nil {
		return rt.cfg, nil
	}
	cfg, err := config.Load(*rt.cfgFile)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	rt.cfg, rt.logger = cfg, logger
	return cfg, nil
}

// open loads the config and connects to the configured store. Callers
// close it with rt.close.
func (rt *session) open(ctx context.Context) (graphnav.Store, error) {
	cfg, err := rt.config()
	if err != nil {
		return nil, err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.store = store
	return store, nil
}

func (rt *session) engine() *graphnav.Engine {
	return graphnav.NewEngine(rt.store,
		graphnav.WithMaxDepth(rt.cfg.Reach.MaxDepth),
		graphnav.WithLogger(rt.logger),
	)
}

func (rt *session) close() {
	if rt.store == nil {
		return
	}
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("close store", "error", err)
	}
	rt.store = nil
}

func openStore(ctx context.Context, cfg *config.Config) (graphnav.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect: %w", err)
		}
		return postgres.New(pool), nil
	case "sqlite":
		return sqlite.Open(ctx, cfg.Database.URL)
	}
	return nil, errors.New("unknown database driver " + cfg.Database.Driver)
}
