// internal/api/handler/api/positions.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/metrics"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/risk"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
)

// PositionsHandler handles position lifecycle API requests.
type PositionsHandler struct {
	portfolio *position.Portfolio
	risk      *risk.Manager
	reg       *metrics.Registry
}

// NewPositionsHandler creates a new positions handler.
func NewPositionsHandler(pf *position.Portfolio, rm *risk.Manager, reg *metrics.Registry) *PositionsHandler {
	return &PositionsHandler{portfolio: pf, risk: rm, reg: reg}
}

// OpenRequest is the JSON body for opening a position from an analysis.
type OpenRequest struct {
	Analysis strategy.Analysis `json:"analysis"`
	Stock    core.Stock        `json:"stock"`
}

// List returns positions, optionally filtered by status.
func (h *PositionsHandler) List(w http.ResponseWriter, r *http.Request) {
	var positions []*position.Position
	if r.URL.Query().Get("status") == string(position.StatusOpen) {
		positions = h.portfolio.OpenPositions()
	} else {
		positions = h.portfolio.Positions()
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"positions": positions,
		"total":     len(positions),
	})
}

// Get returns a single position by ID.
func (h *PositionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolio.Position(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

// Open gates an analysis through the risk manager and books it.
func (h *PositionsHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}

	draft := strategy.NewPosition(&req.Analysis, time.Now().UTC())

	assessment := h.risk.ValidateTrade(h.portfolio, draft, req.Stock)
	if h.reg != nil {
		h.reg.RecordTradeGate(string(draft.Strategy), assessment.Approved)
	}
	if !assessment.Approved {
		response.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"position":   nil,
			"assessment": assessment,
		})
		return
	}

	if err := h.portfolio.AddPosition(draft); err != nil {
		response.Error(w, statusForPositionErr(err), err)
		return
	}
	h.updateGauges()

	response.JSON(w, http.StatusCreated, map[string]any{
		"position":   draft,
		"assessment": assessment,
	})
}

// CloseRequest is the JSON body for closing a position.
type CloseRequest struct {
	CloseDate  time.Time `json:"close_date"`
	ClosePrice float64   `json:"close_price"`
	Reason     string    `json:"reason"`
}

// Close buys back or expires an open position.
func (h *PositionsHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}
	if req.CloseDate.IsZero() {
		req.CloseDate = time.Now().UTC()
	}

	id := r.PathValue("id")
	if err := h.portfolio.ClosePosition(id, req.CloseDate, req.ClosePrice, req.Reason); err != nil {
		response.Error(w, statusForPositionErr(err), err)
		return
	}
	h.updateGauges()

	p, _ := h.portfolio.Position(id)
	response.JSON(w, http.StatusOK, p)
}

// AssignRequest is the JSON body for assigning a position.
type AssignRequest struct {
	CloseDate      time.Time `json:"close_date"`
	ReferencePrice float64   `json:"reference_price"`
}

// Assign settles a position assigned at expiration.
func (h *PositionsHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}
	if req.CloseDate.IsZero() {
		req.CloseDate = time.Now().UTC()
	}

	id := r.PathValue("id")
	if err := h.portfolio.AssignPosition(id, req.CloseDate, req.ReferencePrice); err != nil {
		response.Error(w, statusForPositionErr(err), err)
		return
	}
	h.updateGauges()

	p, _ := h.portfolio.Position(id)
	response.JSON(w, http.StatusOK, p)
}

func (h *PositionsHandler) updateGauges() {
	if h.reg == nil {
		return
	}
	open := h.portfolio.OpenPositions()
	h.reg.SetPositionsOpen(len(open))

	total := h.portfolio.Cash() + h.portfolio.CommittedCash()
	if total > 0 {
		h.reg.SetCashDeployedPct(h.portfolio.CommittedCash() / total * 100)
	}
}

func statusForPositionErr(err error) int {
	switch {
	case errors.Is(err, core.ErrPositionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicatePosition):
		return http.StatusConflict
	case errors.Is(err, core.ErrPositionClosed), errors.Is(err, core.ErrPositionOpen),
		errors.Is(err, core.ErrInsufficientCash), errors.Is(err, core.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
