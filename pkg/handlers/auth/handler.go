package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cloudops-tools/cloudops/pkg/handlers/render"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/server/middleware"
	authsvc "github.com/cloudops-tools/cloudops/pkg/services/auth"
)

type Handler struct {
	service *authsvc.Service
}

func NewHandler(service *authsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, authsvc.ErrMissingFields), errors.Is(err, authsvc.ErrWeakPassword):
		render.Error(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, authsvc.ErrEmailTaken):
		render.Error(w, r, http.StatusConflict, err.Error())
		return
	case err != nil:
		render.Error(w, r, http.StatusInternalServerError, "failed to create account")
		return
	}

	render.JSON(w, r, http.StatusCreated, api.AuthResponse{
		Message: "Account created successfully",
		Token:   token,
		User:    api.User{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Error(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		render.Error(w, r, http.StatusUnauthorized, authsvc.ErrInvalidLogin.Error())
		return
	}

	render.JSON(w, r, http.StatusOK, api.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    api.User{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), middleware.PrincipalID(r.Context()))
	if err != nil {
		render.Error(w, r, http.StatusNotFound, "User not found")
		return
	}

	render.JSON(w, r, http.StatusOK, api.Profile{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}
