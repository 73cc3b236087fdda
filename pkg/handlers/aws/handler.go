// Package aws exposes the per-account aggregation surfaces over HTTP. Every
// route resolves the authenticated principal's binding per request; request
// errors map to 412 (no binding), 401 (rejected credentials on connect), or
// 500 (upstream failure).
package aws

import (
	"github.com/cloudops-tools/cloudops/pkg/services/account"
)

type Handler struct {
	account account.Explorer
}

func NewHandler(account account.Explorer) *Handler {
	return &Handler{account: account}
}
