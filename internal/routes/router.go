package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"lifewithchrist/community/internal/api"
	"lifewithchrist/community/internal/db"
	"lifewithchrist/community/internal/jobs"
	"lifewithchrist/community/internal/logging"
	"lifewithchrist/community/internal/metrics"
	"lifewithchrist/community/internal/middleware"
	"lifewithchrist/community/internal/providers"
	"lifewithchrist/community/internal/workers"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Redis, upSince))

	// Background jobs and workers
	digestJob := jobs.InitializeJobs(
		context.Background(),
		deps.Repo.Devotionals,
		deps.Services.Queue,
		deps.Services.LinkSigner,
		metricsReg,
	)

	workers.InitWorkers(
		context.Background(),
		deps.Services.Queue,
		providers.NewFunctionsProvider(),
	)

	// Initialize jobs handler for manual triggering
	jobsHandler := api.NewJobsHandler(digestJob)

	// Register API routes (after jobsHandler is initialized)
	RegisterAPIRoutes(r, metricsReg, handlers, jobsHandler, deps)

	return r
}
