package main

import (
	"fmt"
	"os"

	"github.com/adamdoherty-arc/magnus/internal/app"
	"github.com/adamdoherty-arc/magnus/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "magnus",
	Short: "Magnus - wheel strategy decision support",
	Long: `Magnus analyzes cash-secured puts and covered calls, tracks the
resulting positions, gates trades through a risk manager, and
estimates the tax consequences of the premium income.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadConfig reads the configured file or falls back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Warn("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newApp builds the application from flags and config.
func newApp(log *zap.Logger) (*app.App, error) {
	cfg, err := loadConfig(log)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
