package handlers

import (
	"encoding/json"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the owner
// @Description Product counts, today's sales totals, the top seller and the expiring-soon card
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := metricsRepo.GetDashboardMetrics(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch metrics", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics)
}
