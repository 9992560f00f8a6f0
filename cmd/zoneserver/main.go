package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/zonecore/internal/config"
	"github.com/udisondev/zonecore/internal/db"
	"github.com/udisondev/zonecore/internal/journal"
	"github.com/udisondev/zonecore/internal/network"
	"github.com/udisondev/zonecore/internal/zone"
)

const ConfigPath = "config/zoneserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.ResolvePath(ConfigPath)
	cfg, err := config.LoadZoneServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config %s: %w", cfgPath, err)
	}
	slog.Info("zonecore starting",
		"config", cfgPath,
		"bind", cfg.Addr(),
		"log_level", cfg.LogLevel,
		"db_driver", cfg.Database.Driver)

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := zone.Options{
		TickInterval: cfg.TickInterval,
		CellSize:     cfg.CellSize,
		ViewDistance: cfg.ViewDistance,
	}
	if cfg.JournalDir != "" {
		jw := journal.NewWriter(cfg.JournalDir)
		defer func() {
			if err := jw.Close(); err != nil {
				slog.Warn("closing journal", "error", err)
			}
		}()
		opts.Sink = jw
		slog.Info("zone journal enabled", "dir", cfg.JournalDir)
	}

	manager := zone.NewManager(opts)
	for _, ze := range cfg.Zones {
		if ze.InstanceContentID != 0 {
			if _, err := manager.CreateInstance(ze.ID, ze.Name, ze.InstanceContentID); err != nil {
				return fmt.Errorf("creating instance %d: %w", ze.ID, err)
			}
			continue
		}
		if _, err := manager.CreateZone(ze.ID, ze.Name); err != nil {
			return fmt.Errorf("creating zone %d: %w", ze.ID, err)
		}
	}
	slog.Info("zones created", "count", len(cfg.Zones))

	tickets, err := network.NewTicketSigner([]byte(cfg.TicketSecret))
	if err != nil {
		return fmt.Errorf("creating ticket signer: %w", err)
	}

	srv := network.NewServer(manager, store, tickets, network.Options{
		DefaultZone:   cfg.Zones[0].ID,
		SendQueueSize: cfg.SendQueueSize,
		WriteTimeout:  cfg.WriteTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := manager.Run(gctx)
		if gctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return srv.Run(gctx, cfg.Addr())
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("zone server: %w", err)
	}
	slog.Info("zonecore stopped")
	return nil
}

// openStore connects the character store selected by the config.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.CharacterStore, func(), error) {
	switch cfg.Driver {
	case db.DriverSQLite:
		s, err := db.OpenSQLite(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		slog.Info("sqlite store opened", "path", cfg.Path)
		return s, func() { _ = s.Close() }, nil
	default:
		if err := db.RunMigrations(ctx, db.DriverPostgres, cfg.DSN()); err != nil {
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		database, err := db.New(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")
		return db.NewCharacterRepository(database.Pool()), database.Close, nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
