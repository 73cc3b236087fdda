package aws

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
)

func (h *Handler) CPUMetrics(w http.ResponseWriter, r *http.Request) {
	explorer, err := h.account.Metrics(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	instanceID := chi.URLParam(r, "instanceId")
	series, err := explorer.CPUUtilization(r.Context(), instanceID)
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	// An empty series renders as an empty datapoint list, not an error.
	response := api.MetricSeries{
		InstanceID: series.InstanceID,
		Metric:     series.Metric,
		Datapoints: make([]api.Datapoint, 0, len(series.Datapoints)),
	}
	for _, dp := range series.Datapoints {
		response.Datapoints = append(response.Datapoints, api.Datapoint{
			Timestamp: dp.Timestamp,
			Average:   dp.Average,
			Maximum:   dp.Maximum,
		})
	}

	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) MetricsOverview(w http.ResponseWriter, r *http.Request) {
	explorer, err := h.account.Metrics(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	// Overview is best-effort: a failed statistics call degrades to null.
	avg, err := explorer.Overview(r.Context())
	if err != nil {
		avg = nil
	}

	render.JSON(w, r, http.StatusOK, api.MetricsOverview{AvgCPU: avg})
}
