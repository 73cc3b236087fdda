package aws

import (
	"net/http"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
)

func (h *Handler) ListInstances(w http.ResponseWriter, r *http.Request) {
	explorer, err := h.account.Compute(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	instances, err := explorer.ListInstances(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.InstanceList{Instances: make([]api.Instance, 0, len(instances))}
	for _, inst := range instances {
		response.Instances = append(response.Instances, api.Instance{
			InstanceID:       inst.ID,
			Name:             inst.Name,
			State:            inst.State,
			InstanceType:     inst.Type,
			PublicIP:         inst.PublicIP,
			PrivateIP:        inst.PrivateIP,
			AvailabilityZone: inst.AvailabilityZone,
			LaunchTime:       inst.LaunchTime,
			Platform:         inst.Platform,
		})
	}
	response.Total = len(response.Instances)

	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) InstanceSummary(w http.ResponseWriter, r *http.Request) {
	explorer, err := h.account.Compute(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	summary, err := explorer.Summarize(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, api.InstanceSummary{
		Total:   summary.Total,
		Running: summary.Running,
		Stopped: summary.Stopped,
		Other:   summary.Other,
	})
}
