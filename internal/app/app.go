package app

import (
	"fmt"

	"github.com/adamdoherty-arc/magnus/internal/config"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/risk"
	"github.com/adamdoherty-arc/magnus/internal/storage/archive"
	"github.com/adamdoherty-arc/magnus/internal/storage/ledger"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
	"github.com/adamdoherty-arc/magnus/internal/strategy/coveredcall"
	"github.com/adamdoherty-arc/magnus/internal/strategy/csp"
	"github.com/adamdoherty-arc/magnus/internal/tax"
	"go.uber.org/zap"
)

// analysisHistorySize bounds the in-memory analysis ledger.
const analysisHistorySize = 1000

// App wires the engine, portfolio, risk gate, tax calculator, and
// storage from configuration. It is the shared assembly behind every
// command.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	Engine    *strategy.Engine
	Portfolio *position.Portfolio
	Risk      *risk.Manager
	Tax       *tax.Calculator
	Ledger    ledger.Store
	Archiver  *archive.Archiver
	Metrics   *metrics.Registry
}

// New builds an App from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := strategy.NewEngine(logger.Named("strategy"))
	engine.Register(core.StrategyCashSecuredPut, csp.New())
	engine.Register(core.StrategyCoveredCall, coveredcall.New())

	pf, err := loadPortfolio(cfg)
	if err != nil {
		return nil, err
	}

	rm := risk.NewManager(risk.Config{
		MaxConcentrationPct: cfg.Risk.MaxConcentrationPct,
		ExpiryWarningDays:   cfg.Risk.ExpiryWarningDays,
		MaxDeployedPct:      cfg.Risk.MaxDeployedPct,
	}, logger.Named("risk"))

	calc := tax.NewCalculator(tax.Config{
		Year:         cfg.Tax.Year,
		FilingStatus: cfg.FilingStatus(),
		StateRate:    cfg.Tax.StateRate,
	}, logger.Named("tax"))

	arch, err := buildArchiver(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		Engine:    engine,
		Portfolio: pf,
		Risk:      rm,
		Tax:       calc,
		Ledger:    ledger.NewMemoryStore(analysisHistorySize),
		Archiver:  arch,
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.NewRegistry()
	}
	return a, nil
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SavePortfolio persists the position ledger when a path is configured.
func (a *App) SavePortfolio() error {
	if a.cfg.Portfolio.LedgerPath == "" {
		return nil
	}
	return ledger.SavePositions(a.cfg.Portfolio.LedgerPath, a.Portfolio)
}

func loadPortfolio(cfg *config.Config) (*position.Portfolio, error) {
	if cfg.Portfolio.LedgerPath != "" {
		return ledger.LoadPositions(cfg.Portfolio.LedgerPath,
			cfg.Portfolio.InitialCash, cfg.Portfolio.MaxPositionSize)
	}
	return position.NewPortfolio(cfg.Portfolio.InitialCash, cfg.Portfolio.MaxPositionSize), nil
}

func buildArchiver(cfg *config.Config, logger *zap.Logger) (*archive.Archiver, error) {
	var store archive.Storage
	switch cfg.Archive.Type {
	case "", "localfs":
		path := cfg.Archive.Path
		if path == "" {
			path = "archive"
		}
		fs, err := archive.NewLocalFS(path)
		if err != nil {
			return nil, fmt.Errorf("creating archive dir: %w", err)
		}
		store = fs
	case "s3":
		s3store, err := archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 archive: %w", err)
		}
		store = s3store
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type: %s", cfg.Archive.Type))
	}

	return archive.NewArchiver(store, logger.Named("archive")), nil
}
