package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/fittrack-be/internal/api/handlers"
	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/metrics"
	"github.com/isdelr/fittrack-be/internal/services"
	"github.com/isdelr/fittrack-be/internal/websocket"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Tokens           *auth.Manager
	Hub              *websocket.Hub
	Metrics          *metrics.Collector
	AuthLimiter      *RateLimiter
	DB               handlers.Pinger
	AllowedOrigins   []string
	Users            services.UserServiceProvider
	Workouts         services.WorkoutServiceProvider
	Exercises        services.ExerciseServiceProvider
	WorkoutExercises services.WorkoutExerciseServiceProvider
	Statistics       services.StatisticServiceProvider
	Events           services.EventServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	var authFailures handlers.AuthFailureRecorder
	if deps.Metrics != nil {
		authFailures = deps.Metrics
	}
	userHandler := handlers.NewUserHandler(deps.Users, deps.Tokens, authFailures)
	workoutHandler := handlers.NewWorkoutHandler(deps.Workouts)
	exerciseHandler := handlers.NewExerciseHandler(deps.Exercises)
	workoutExerciseHandler := handlers.NewWorkoutExerciseHandler(deps.WorkoutExercises)
	statisticHandler := handlers.NewStatisticHandler(deps.Statistics)
	eventHandler := handlers.NewEventHandler(deps.Events)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	requireAuth := deps.Tokens.Middleware()
	limitAuth := func(next http.Handler) http.Handler { return next }
	if deps.AuthLimiter != nil {
		limitAuth = deps.AuthLimiter.Middleware
	}

	r.Get("/healthz", healthHandler.Check)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	if deps.Hub != nil {
		wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.AllowedOrigins)
		r.With(deps.Tokens.QueryTokenMiddleware()).Get("/ws", wsHandler.Serve)
	}

	r.Route("/users", func(r chi.Router) {
		r.With(limitAuth).Post("/register", userHandler.Register)
		r.With(limitAuth).Post("/login", userHandler.Login)
		r.Get("/", userHandler.GetAll)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandler.GetMe)
			r.Patch("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	r.Route("/workouts", func(r chi.Router) {
		r.Get("/all", workoutHandler.GetAll)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", workoutHandler.GetMine)
			r.Post("/", workoutHandler.Create)
			r.Get("/{id}", workoutHandler.Get)
			r.Patch("/{id}", workoutHandler.Update)
			r.Delete("/{id}", workoutHandler.Delete)
		})
	})

	r.Route("/exercises", func(r chi.Router) {
		r.Get("/", exerciseHandler.GetAll)
		r.Post("/", exerciseHandler.Create)
		r.Get("/{id}", exerciseHandler.Get)
		r.Put("/{id}", exerciseHandler.Replace)
		r.Delete("/{id}", exerciseHandler.Delete)
	})

	r.Route("/workoutExercises", func(r chi.Router) {
		r.Get("/all", workoutExerciseHandler.GetAll)
		r.Get("/{id}", workoutExerciseHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", workoutExerciseHandler.GetMine)
			r.Get("/byWorkoutId/{workoutId}", workoutExerciseHandler.GetByWorkout)
			r.Post("/", workoutExerciseHandler.Create)
			r.Patch("/{id}", workoutExerciseHandler.Update)
			r.Delete("/{id}", workoutExerciseHandler.Delete)
		})
	})

	r.Route("/statistics", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/allTime", statisticHandler.AllTime)
		r.Get("/weeklyStat", statisticHandler.Weekly)
	})

	r.Route("/events", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/recent", eventHandler.GetRecent)
	})

	return r
}
