package aws

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
	"github.com/cloudops-tools/cloudops/pkg/services/credentials"
)

func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	var req api.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccessKeyID == "" || req.SecretAccessKey == "" || req.Region == "" {
		render.Error(w, r, http.StatusBadRequest, "accessKeyId, secretAccessKey, and region are required")
		return
	}

	binding, err := h.account.Connect(
		r.Context(),
		middleware.PrincipalID(r.Context()),
		req.AccessKeyID,
		req.SecretAccessKey,
		req.Region,
	)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			render.Error(w, r, http.StatusUnauthorized,
				"Invalid AWS credentials. Please check your Access Key ID and Secret Access Key.")
			return
		}
		render.UpstreamError(w, r, err)
		return
	}

	render.JSON(w, r, http.StatusOK, api.ConnectResponse{
		Message: "AWS account connected successfully",
		Account: api.ConnectedAccount{
			AccountID: binding.AccountID,
			ARN:       binding.ARN,
			Region:    binding.Region,
		},
	})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	binding, connected := h.account.Status(middleware.PrincipalID(r.Context()))
	if !connected {
		render.JSON(w, r, http.StatusOK, api.ConnectionStatus{Connected: false})
		return
	}
	render.JSON(w, r, http.StatusOK, api.ConnectionStatus{
		Connected: true,
		AccountID: binding.AccountID,
		Region:    binding.Region,
		ARN:       binding.ARN,
	})
}

func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.account.Disconnect(middleware.PrincipalID(r.Context()))
	render.JSON(w, r, http.StatusOK, api.Message{Message: "AWS account disconnected"})
}
