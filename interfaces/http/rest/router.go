package rest

import (
	"net/http"

	"compass/interfaces/http/rest/handlers"
	"compass/interfaces/http/rest/middleware"
	"compass/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	authHandler      *handlers.AuthHandler
	itineraryHandler *handlers.ItineraryHandler
	plannerHandler   *handlers.PlannerHandler
	validator        *auth.JWTValidator
	enableCORS       bool
	logger           *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	authHandler *handlers.AuthHandler,
	itineraryHandler *handlers.ItineraryHandler,
	plannerHandler *handlers.PlannerHandler,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:      authHandler,
		itineraryHandler: itineraryHandler,
		plannerHandler:   plannerHandler,
		validator:        validator,
		enableCORS:       enableCORS,
		logger:           logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.compass.travel"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Public account routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
		})

		// Everything below requires an authenticated user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.logger))

			r.Route("/itineraries", func(r chi.Router) {
				r.Post("/", rt.itineraryHandler.SaveItinerary)
				r.Get("/", rt.itineraryHandler.ListItineraries)
				r.Get("/{itineraryID}", rt.itineraryHandler.GetItinerary)
				r.Put("/{itineraryID}", rt.itineraryHandler.UpdateItinerary)
				r.Delete("/{itineraryID}", rt.itineraryHandler.DeleteItinerary)
				r.Post("/{itineraryID}/edit", rt.itineraryHandler.BeginEdit)
				r.Delete("/{itineraryID}/edit", rt.itineraryHandler.CancelEdit)
				r.Get("/{itineraryID}/locations", rt.plannerHandler.MapLocations)
			})

			r.Route("/planner", func(r chi.Router) {
				r.Post("/generate", rt.plannerHandler.GeneratePlan)
				r.Get("/session", rt.plannerHandler.SessionStatus)
			})
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
