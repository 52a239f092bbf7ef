package rest

import (
	"net/http"
	"time"

	"mindmap-backend/infrastructure/config"
	"mindmap-backend/interfaces/http/rest/handlers"
	"mindmap-backend/interfaces/http/rest/middleware"
	"mindmap-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg             *config.Config
	generateHandler *handlers.GenerateHandler
	mindmapHandler  *handlers.MindMapHandler
	jwtValidator    *auth.JWTValidator
	logger          *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	generateHandler *handlers.GenerateHandler,
	mindmapHandler *handlers.MindMapHandler,
	jwtValidator *auth.JWTValidator,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:             cfg,
		generateHandler: generateHandler,
		mindmapHandler:  mindmapHandler,
		jwtValidator:    jwtValidator,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// 60 generations a minute per IP is plenty for a human pasting text.
	limiter := auth.NewTokenBucketLimiter(60, time.Second)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.jwtValidator, limiter, rt.logger))

		r.Route("/mindmaps", func(r chi.Router) {
			r.Post("/generate", rt.generateHandler.Generate)
			r.Post("/", rt.mindmapHandler.Save)
			r.Get("/", rt.mindmapHandler.List)
			r.Get("/{mindmapID}", rt.mindmapHandler.Get)
			r.Delete("/{mindmapID}", rt.mindmapHandler.Delete)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
