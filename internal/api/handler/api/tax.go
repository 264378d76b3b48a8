// internal/api/handler/api/tax.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/storage/archive"
	"github.com/adamdoherty-arc/magnus/internal/tax"
)

// TaxHandler generates tax reports over the portfolio's positions.
type TaxHandler struct {
	portfolio *position.Portfolio
	calc      *tax.Calculator
	archiver  *archive.Archiver
	reg       *metrics.Registry
}

// NewTaxHandler creates a new tax handler. The archiver may be nil when
// no archive backend is configured.
func NewTaxHandler(pf *position.Portfolio, calc *tax.Calculator, arch *archive.Archiver, reg *metrics.Registry) *TaxHandler {
	return &TaxHandler{portfolio: pf, calc: calc, archiver: arch, reg: reg}
}

// ReportRequest is the JSON body for a tax report request.
type ReportRequest struct {
	Year        int       `json:"year"`
	OtherIncome float64   `json:"other_income"`
	Marks       tax.Marks `json:"marks,omitempty"`
	Archive     bool      `json:"archive"`
}

// Report generates a report for the requested year and optionally
// writes it to the archive.
func (h *TaxHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
			return
		}
	} else {
		if y := r.URL.Query().Get("year"); y != "" {
			if n, err := strconv.Atoi(y); err == nil {
				req.Year = n
			}
		}
		if oi := r.URL.Query().Get("other_income"); oi != "" {
			if f, err := strconv.ParseFloat(oi, 64); err == nil {
				req.OtherIncome = f
			}
		}
	}

	now := time.Now().UTC()
	if req.Year == 0 {
		req.Year = now.Year()
	}

	report := h.calc.GenerateReport(h.portfolio.Positions(), req.OtherIncome, req.Year, now, req.Marks)
	if h.reg != nil {
		h.reg.RecordTaxReport(len(report.WashSales))
	}

	var archivePath string
	if req.Archive && h.archiver != nil {
		path, err := h.archiver.SaveTaxReport(r.Context(), report)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}
		archivePath = path
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"report":       report,
		"archive_path": archivePath,
	})
}

// PlacementRequest is the JSON body for an account placement request.
type PlacementRequest struct {
	Profiles  []tax.StrategyProfile `json:"profiles"`
	Available []tax.AccountType     `json:"available"`
}

// Placement recommends which account type each strategy belongs in.
func (h *TaxHandler) Placement(w http.ResponseWriter, r *http.Request) {
	var req PlacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	placements := tax.RecommendPlacement(req.Profiles, req.Available)
	response.JSON(w, http.StatusOK, map[string]any{
		"placements": placements,
	})
}
