package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/clinic-visits/internal/config"
	"github.com/evcraddock/clinic-visits/internal/db"
	"github.com/evcraddock/clinic-visits/internal/logging"
	"github.com/evcraddock/clinic-visits/internal/postgres"
	"github.com/evcraddock/clinic-visits/internal/visit"
	"github.com/evcraddock/clinic-visits/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		addr   string
		dev    bool
		driver string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the visits API server",
		Long: `Start the HTTP/JSON visits API.

Settings come from ./cv.yaml (or --config) and CV_* environment variables.
Flags given here win over both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("dev") {
				cfg.DevMode = dev
			}
			if cmd.Flags().Changed("driver") {
				cfg.DatabaseDriver = driver
			}
			if flagDB != "" {
				cfg.SQLitePath = flagDB
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "address to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "human-readable debug logging")
	cmd.Flags().StringVar(&driver, "driver", config.DriverSQLite, "visit store (sqlite|postgres)")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.LogLevel, cfg.DevMode)

	store, ping, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := visit.NewService(store, visit.NewRoster(cfg.Doctors), slog.Default())
	srv := web.NewServer(svc,
		web.WithHealthCheck(ping),
		web.WithRequestTimeout(cfg.RequestTimeout),
	)

	slog.Info("starting visits api",
		"addr", cfg.Addr,
		"driver", cfg.DatabaseDriver,
		"doctors", len(svc.Roster().Names()),
	)
	return srv.ListenAndServe(ctx, cfg.Addr, cfg.ShutdownTimeout)
}

// openStore opens the configured visit store and returns it with a health
// probe and a close function.
func openStore(ctx context.Context, cfg config.Config) (visit.Store, func(context.Context) error, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pg, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
			ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := postgres.Close(pg); err != nil {
				slog.Warn("closing database", "error", err)
			}
		}
		return postgres.NewVisitRepo(pg), pg.PingContext, closeFn, nil

	case config.DriverSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, nil, nil, err
			}
		}
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := database.Close(); err != nil {
				slog.Warn("closing database", "error", err)
			}
		}
		return visit.NewRepository(database), database.PingContext, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
