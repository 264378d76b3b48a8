package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
	Tax       TaxConfig       `mapstructure:"tax"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Archive   ArchiveConfig   `mapstructure:"archive"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// PortfolioConfig seeds the session portfolio.
type PortfolioConfig struct {
	InitialCash float64 `mapstructure:"initial_cash"`
	// MaxPositionSize is the per-trade cap as a fraction of cash.
	MaxPositionSize float64 `mapstructure:"max_position_size"`
	// LedgerPath is an optional JSON ledger file for the CLI.
	LedgerPath string `mapstructure:"ledger_path"`
}

// TaxConfig selects the bracket tables and state rate.
type TaxConfig struct {
	Year         int     `mapstructure:"year"`
	FilingStatus string  `mapstructure:"filing_status"`
	StateRate    float64 `mapstructure:"state_rate"`
}

// RiskConfig holds portfolio-wide thresholds.
type RiskConfig struct {
	MaxConcentrationPct float64 `mapstructure:"max_concentration_pct"`
	ExpiryWarningDays   int     `mapstructure:"expiry_warning_days"`
	MaxDeployedPct      float64 `mapstructure:"max_deployed_pct"`
}

// ScanConfig controls the covered-call holdings scanner.
type ScanConfig struct {
	Rungs      int     `mapstructure:"rungs"`
	BandLow    float64 `mapstructure:"band_low"`
	BandHigh   float64 `mapstructure:"band_high"`
	DTE        int     `mapstructure:"dte"`
	MaxResults int     `mapstructure:"max_results"`
}

// ArchiveConfig selects the year-end report archive backend.
type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Portfolio: PortfolioConfig{
			InitialCash:     100000,
			MaxPositionSize: 0.20,
		},
		Tax: TaxConfig{
			Year:         2025,
			FilingStatus: string(core.FilingSingle),
			StateRate:    0,
		},
		Risk: RiskConfig{
			MaxConcentrationPct: 25.0,
			ExpiryWarningDays:   7,
			MaxDeployedPct:      80.0,
		},
		Scan: ScanConfig{
			Rungs:      5,
			BandLow:    0.05,
			BandHigh:   0.15,
			DTE:        35,
			MaxResults: 10,
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "archive",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if c.Portfolio.InitialCash < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial cash must not be negative, got %.2f", c.Portfolio.InitialCash))
	}
	if c.Portfolio.MaxPositionSize <= 0 || c.Portfolio.MaxPositionSize > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max position size must be in (0, 1], got %.2f", c.Portfolio.MaxPositionSize))
	}

	if c.Tax.Year < 2000 || c.Tax.Year > 2100 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("tax year out of range: %d", c.Tax.Year))
	}
	if c.Tax.StateRate < 0 || c.Tax.StateRate >= 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("state rate must be in [0, 1), got %.2f", c.Tax.StateRate))
	}

	if c.Scan.Rungs < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("scan rungs must be at least 1, got %d", c.Scan.Rungs))
	}
	if c.Scan.BandLow <= 0 || c.Scan.BandHigh <= c.Scan.BandLow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("scan band invalid: [%.2f, %.2f]", c.Scan.BandLow, c.Scan.BandHigh))
	}

	switch c.Archive.Type {
	case "localfs", "s3", "":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type: %s", c.Archive.Type))
	}
	if c.Archive.Type == "s3" && c.Archive.S3.Bucket == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("s3 archive requires a bucket"))
	}

	return nil
}

// FilingStatus returns the configured filing status as a typed value.
func (c *Config) FilingStatus() core.FilingStatus {
	return core.FilingStatus(c.Tax.FilingStatus)
}
