package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api"
	"github.com/adamdoherty-arc/magnus/internal/logger"
	"github.com/adamdoherty-arc/magnus/internal/strategy/coveredcall"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Magnus API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	a, err := newApp(log)
	if err != nil {
		return err
	}
	cfg := a.Config()

	log.Info("starting Magnus server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	server, err := api.NewServer(api.Config{
		Host:   cfg.Server.Host,
		Port:   cfg.Server.Port,
		APIKey: cfg.Server.APIKey,
		ScanConfig: coveredcall.ScanConfig{
			Rungs:    cfg.Scan.Rungs,
			BandLow:  cfg.Scan.BandLow,
			BandHigh: cfg.Scan.BandHigh,
			DTE:      cfg.Scan.DTE,
		},
		ScanMaxResults: cfg.Scan.MaxResults,
		MetricsPath:    cfg.Metrics.Path,
	}, api.Deps{
		Engine:    a.Engine,
		Portfolio: a.Portfolio,
		Risk:      a.Risk,
		Tax:       a.Tax,
		Ledger:    a.Ledger,
		Archiver:  a.Archiver,
		Metrics:   a.Metrics,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down Magnus server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	if err := a.SavePortfolio(); err != nil {
		log.Error("saving position ledger", zap.Error(err))
		return err
	}
	return nil
}
