package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 8080

portfolio:
  initial_cash: 50000
  max_position_size: 0.25

tax:
  year: 2025
  filing_status: married_joint
  state_rate: 0.05

archive:
  type: localfs
  path: "/tmp/magnus/archive"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Portfolio.InitialCash != 50000 {
		t.Errorf("expected initial cash 50000, got %.2f", cfg.Portfolio.InitialCash)
	}

	if cfg.FilingStatus() != core.FilingMarriedJoint {
		t.Errorf("expected married_joint, got %s", cfg.Tax.FilingStatus)
	}

	if cfg.Archive.Type != "localfs" {
		t.Errorf("expected localfs, got %s", cfg.Archive.Type)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Portfolio.MaxPositionSize != 0.20 {
		t.Errorf("expected default max_position_size 0.20, got %f", cfg.Portfolio.MaxPositionSize)
	}

	if cfg.Tax.Year != 2025 {
		t.Errorf("expected default tax year 2025, got %d", cfg.Tax.Year)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return Defaults() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port - zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "negative initial cash",
			mutate:  func(c *Config) { c.Portfolio.InitialCash = -1 },
			wantErr: true,
		},
		{
			name:    "position size over 1",
			mutate:  func(c *Config) { c.Portfolio.MaxPositionSize = 1.5 },
			wantErr: true,
		},
		{
			name:    "state rate out of range",
			mutate:  func(c *Config) { c.Tax.StateRate = 1.0 },
			wantErr: true,
		},
		{
			name:    "inverted scan band",
			mutate:  func(c *Config) { c.Scan.BandLow, c.Scan.BandHigh = 0.15, 0.05 },
			wantErr: true,
		},
		{
			name:    "unknown archive type",
			mutate:  func(c *Config) { c.Archive.Type = "tape" },
			wantErr: true,
		},
		{
			name:    "s3 archive without bucket",
			mutate:  func(c *Config) { c.Archive.Type = "s3" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
