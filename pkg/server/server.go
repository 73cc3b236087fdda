package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	authhandlers "github.com/cloudops-tools/cloudops/pkg/handlers/auth"
	awshandlers "github.com/cloudops-tools/cloudops/pkg/handlers/aws"
	"github.com/cloudops-tools/cloudops/pkg/models/api"
	cloudopsmiddleware "github.com/cloudops-tools/cloudops/pkg/server/middleware"
	"github.com/cloudops-tools/cloudops/pkg/services/account"
	"github.com/cloudops-tools/cloudops/pkg/services/auth"
)

const version = "1.0.0"

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Auth    *auth.Service
	Account account.Explorer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	authHandler := authhandlers.NewHandler(deps.Auth)
	awsHandler := awshandlers.NewHandler(deps.Account)

	router := chi.NewRouter()

	router.Use(cloudopsmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "CloudOps Mobile API",
			"version": version,
		})
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(cloudopsmiddleware.RequireAuth(deps.Auth))
				r.Get("/profile", authHandler.Profile)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(cloudopsmiddleware.RequireAuth(deps.Auth))

			r.Route("/aws", func(r chi.Router) {
				r.Post("/connect", awsHandler.Connect)
				r.Get("/status", awsHandler.Status)
				r.Delete("/disconnect", awsHandler.Disconnect)
			})
			r.Route("/ec2", func(r chi.Router) {
				r.Get("/instances", awsHandler.ListInstances)
				r.Get("/summary", awsHandler.InstanceSummary)
			})
			r.Get("/s3/buckets", awsHandler.ListBuckets)
			r.Route("/cloudwatch", func(r chi.Router) {
				r.Get("/cpu/{instanceId}", awsHandler.CPUMetrics)
				r.Get("/overview", awsHandler.MetricsOverview)
			})
			r.Route("/cost", func(r chi.Router) {
				r.Get("/current", awsHandler.CurrentCost)
				r.Get("/trend", awsHandler.CostTrend)
				r.Get("/budgets", awsHandler.Budgets)
			})
			r.Get("/security/posture", awsHandler.SecurityPosture)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, api.Error{Error: "Route not found"})
	})

	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
