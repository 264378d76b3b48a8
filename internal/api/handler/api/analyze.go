// internal/api/handler/api/analyze.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/storage/ledger"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

// AnalyzeRequest is the JSON body for an analysis request.
type AnalyzeRequest struct {
	Strategy   core.StrategyType `json:"strategy"`
	Stock      core.Stock        `json:"stock"`
	Quantity   int               `json:"quantity"`
	Strike     float64           `json:"strike"`
	Premium    float64           `json:"premium"`
	Expiration time.Time         `json:"expiration"`
}

// AnalyzeHandler handles analysis API requests.
type AnalyzeHandler struct {
	engine *strategy.Engine
	store  ledger.Store
	reg    *metrics.Registry
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(engine *strategy.Engine, store ledger.Store, reg *metrics.Registry) *AnalyzeHandler {
	return &AnalyzeHandler{engine: engine, store: store, reg: reg}
}

// Analyze scores a candidate contract and records the result.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	start := time.Now()
	analysis, err := h.engine.Analyze(req.Strategy, strategy.Request{
		Stock:      req.Stock,
		Quantity:   req.Quantity,
		Strike:     req.Strike,
		Premium:    req.Premium,
		Expiration: req.Expiration,
		Now:        time.Now().UTC(),
	})
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	if h.reg != nil {
		h.reg.RecordAnalysis(string(analysis.Strategy), string(analysis.Recommendation),
			time.Since(start).Seconds())
	}

	if h.store != nil {
		if _, err := h.store.Save(r.Context(), *analysis); err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, analysis)
}

// History lists stored analyses matching query parameters.
func (h *AnalyzeHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ledger.ListFilter{
		Symbol:   q.Get("symbol"),
		Strategy: core.StrategyType(q.Get("strategy")),
		Limit:    50,
	}
	if rec := q.Get("recommendation"); rec != "" {
		filter.Recommendation = core.Recommendation(rec)
	}

	snaps, err := h.store.List(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	count, _ := h.store.Count(r.Context(), filter)

	response.JSON(w, http.StatusOK, map[string]any{
		"analyses": snaps,
		"total":    count,
	})
}
