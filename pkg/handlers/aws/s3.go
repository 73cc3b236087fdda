package aws

import (
	"net/http"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
)

func (h *Handler) ListBuckets(w http.ResponseWriter, r *http.Request) {
	explorer, err := h.account.Storage(middleware.PrincipalID(r.Context()))
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	buckets, err := explorer.ListBuckets(r.Context())
	if err != nil {
		render.UpstreamError(w, r, err)
		return
	}

	response := api.BucketList{Buckets: make([]api.Bucket, 0, len(buckets))}
	for _, b := range buckets {
		response.Buckets = append(response.Buckets, api.Bucket{
			Name:      b.Name,
			CreatedAt: b.CreatedAt,
			Region:    b.Region,
			IsPublic:  b.Public,
		})
	}
	response.Total = len(response.Buckets)

	render.JSON(w, r, http.StatusOK, response)
}
