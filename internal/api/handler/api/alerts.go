// internal/api/handler/api/alerts.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/alert"
	"github.com/adamdoherty-arc/magnus/internal/api/response"
	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/position"
)

// AlertsHandler evaluates alert rules over the portfolio's open
// positions.
type AlertsHandler struct {
	portfolio *position.Portfolio
	monitor   *alert.Monitor
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(pf *position.Portfolio) *AlertsHandler {
	return &AlertsHandler{portfolio: pf, monitor: alert.NewMonitor()}
}

// AlertsRequest carries optional current stock prices by symbol.
// Price-based rules only fire for symbols with a mark.
type AlertsRequest struct {
	Marks map[string]float64 `json:"marks,omitempty"`
}

// Evaluate returns the alerts currently firing.
func (h *AlertsHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req AlertsRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
			return
		}
	}

	alerts := h.monitor.Evaluate(h.portfolio.OpenPositions(), req.Marks, time.Now().UTC())
	response.JSON(w, http.StatusOK, map[string]any{
		"alerts": alerts,
		"total":  len(alerts),
	})
}
