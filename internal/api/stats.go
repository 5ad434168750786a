package api

import (
	"net/http"

	"github.com/erazemk/shutils/internal/report"
)

// StatsHandler handles report endpoints.
type StatsHandler struct {
	Reporter *report.Reporter
}

func statsFilter(r *http.Request) report.Filter {
	return report.Filter{Version: r.URL.Query().Get("version")}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.Reporter.Stats(r.Context(), statsFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, st)
}

// Chart handles GET /api/stats/chart.png.
func (h *StatsHandler) Chart(w http.ResponseWriter, r *http.Request) {
	st, err := h.Reporter.Stats(r.Context(), statsFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	img, err := report.Chart(st)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img)
}
