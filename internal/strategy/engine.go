package strategy

import (
	"sync"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"go.uber.org/zap"
)

// Engine manages the registered analyzers and dispatches requests to
// them by strategy type.
type Engine struct {
	mu        sync.RWMutex
	analyzers map[core.StrategyType]Analyzer
	logger    *zap.Logger
}

// NewEngine creates a new analyzer engine.
func NewEngine(logger ...*zap.Logger) *Engine {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Engine{
		analyzers: make(map[core.StrategyType]Analyzer),
		logger:    l,
	}
}

// Register adds an analyzer for a strategy type.
func (e *Engine) Register(st core.StrategyType, a Analyzer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.analyzers[st] = a
}

// Get retrieves the analyzer for a strategy type.
func (e *Engine) Get(st core.StrategyType) (Analyzer, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	a, ok := e.analyzers[st]
	return a, ok
}

// Analyze dispatches a request to the analyzer for the given strategy.
func (e *Engine) Analyze(st core.StrategyType, req Request) (*Analysis, error) {
	a, ok := e.Get(st)
	if !ok {
		return nil, core.ErrUnknownStrategy
	}

	analysis, err := a.Analyze(req)
	if err != nil {
		e.logger.Warn("analysis failed",
			zap.String("strategy", string(st)),
			zap.String("symbol", req.Stock.Symbol),
			zap.Error(err),
		)
		return nil, err
	}

	e.logger.Debug("analysis complete",
		zap.String("strategy", string(st)),
		zap.String("symbol", analysis.Symbol),
		zap.Float64("score", analysis.QualityScore),
		zap.String("recommendation", string(analysis.Recommendation)),
	)
	return analysis, nil
}
