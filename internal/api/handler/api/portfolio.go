// internal/api/handler/api/portfolio.go
package api

import (
	"net/http"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/position"
	"github.com/adamdoherty-arc/magnus/internal/risk"
)

// PortfolioHandler serves the aggregate portfolio view.
type PortfolioHandler struct {
	portfolio *position.Portfolio
	risk      *risk.Manager
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(pf *position.Portfolio, rm *risk.Manager) *PortfolioHandler {
	return &PortfolioHandler{portfolio: pf, risk: rm}
}

// Get returns cash, holdings, open positions, and risk warnings.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	open := h.portfolio.OpenPositions()
	warnings := h.risk.ValidatePortfolio(h.portfolio, time.Now().UTC())

	response.JSON(w, http.StatusOK, map[string]any{
		"cash":           h.portfolio.Cash(),
		"committed_cash": h.portfolio.CommittedCash(),
		"holdings":       h.portfolio.Holdings(),
		"open_positions": open,
		"warnings":       warnings,
	})
}
