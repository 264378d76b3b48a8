// internal/api/handler/api/scan.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/strategy/coveredcall"
)

// ScanHandler scans stock holdings for covered call candidates.
type ScanHandler struct {
	scanner    *coveredcall.CoveredCall
	config     coveredcall.ScanConfig
	maxResults int
	reg        *metrics.Registry
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(cfg coveredcall.ScanConfig, maxResults int, reg *metrics.Registry) *ScanHandler {
	return &ScanHandler{
		scanner:    coveredcall.New(),
		config:     cfg,
		maxResults: maxResults,
		reg:        reg,
	}
}

// ScanRequest is the JSON body for a holdings scan.
type ScanRequest struct {
	Holdings []coveredcall.Holding `json:"holdings"`
}

// Scan ranks covered call candidates across the submitted holdings.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	results := h.scanner.ScanHoldings(req.Holdings, h.config, h.maxResults, time.Now().UTC())
	if h.reg != nil {
		h.reg.RecordScan(len(results))
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"candidates": results,
		"total":      len(results),
	})
}
