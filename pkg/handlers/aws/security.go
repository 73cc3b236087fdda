package aws

import (
	"net/http"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
)

func (h *Handler) SecurityPosture(w http.ResponseWriter, r *http.Request) {
	engine, err := h.account.Security(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	result, err := engine.Evaluate(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.Posture{
		Score:    result.Score,
		Posture:  result.Posture,
		Findings: make([]api.Finding, 0, len(result.Findings)),
		Critical: result.Critical,
		High:     result.High,
		Medium:   result.Medium,
		Low:      result.Low,
	}
	for _, f := range result.Findings {
		response.Findings = append(response.Findings, api.Finding{
			Type:     f.Kind,
			Severity: string(f.Severity),
			Resource: f.Resource,
			Message:  f.Message,
		})
	}

	render.JSON(w, r, http.StatusOK, response)
}
