package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sukuyo/internal/config"
	"sukuyo/internal/container"
	"sukuyo/internal/logging"
	"sukuyo/internal/ops"
	"sukuyo/ui"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	envLoaded := config.LoadDotEnv()

	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(appConfig.Log.Level, appConfig.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !envLoaded {
		logger.Debug("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(appConfig, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.InitWithDatabase(ctx); err != nil {
		return err
	}

	server := ui.NewServer(c.DiagnosisService, logger, ui.ServerOptions{
		GinMode:     appConfig.Server.GinMode,
		CORSOrigins: appConfig.Server.CORSOrigins,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx, ":"+appConfig.Server.Port)
	})

	if appConfig.Profiling.Enabled {
		opsApp := ops.NewApp(c.Catalog, logger)
		g.Go(func() error {
			logger.Info("profiling enabled",
				zap.String("hint", "go tool pprof http://localhost:"+appConfig.Profiling.Port+"/debug/pprof/profile?seconds=30"))
			return opsApp.Start(ctx, ":"+appConfig.Profiling.Port)
		})
	}

	logger.Info("sukuyo starting",
		zap.String("port", appConfig.Server.Port),
		zap.String("ephemeris", c.Ephemeris.Name()),
		zap.String("birth_timezone", appConfig.Astro.BirthTimezone))

	return g.Wait()
}
