package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/fittrack-be/internal/api"
	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/metrics"
	"github.com/isdelr/fittrack-be/internal/monitoring"
	"github.com/isdelr/fittrack-be/internal/services"
	"github.com/isdelr/fittrack-be/internal/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	log.Info().Str("config", cfg.String()).Msg("Starting fittrack")

	db, err := openDatabase(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, auth.NewPasswordHasher(cfg.BcryptCost))
	workoutService := services.NewWorkoutService(db, eventService)
	exerciseService := services.NewExerciseService(db)
	workoutExerciseService := services.NewWorkoutExerciseService(db, workoutService, exerciseService, eventService)
	statisticService := services.NewStatisticService(db)

	scheduler, err := monitoring.NewScheduler(db, collector, cfg.MaintenanceCron)
	if err != nil {
		return err
	}
	go scheduler.Run()

	limiter := api.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst, collector.RecordRateLimited)

	router := api.NewRouter(api.Dependencies{
		Tokens:           tokens,
		Hub:              hub,
		Metrics:          collector,
		AuthLimiter:      limiter,
		DB:               db,
		AllowedOrigins:   cfg.AllowedOrigins,
		Users:            userService,
		Workouts:         workoutService,
		Exercises:        exerciseService,
		WorkoutExercises: workoutExerciseService,
		Statistics:       statisticService,
		Events:           eventService,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("Shutting down server...")
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := srv.Shutdown(ctx)

	scheduler.Stop()
	limiter.Stop()
	hub.Stop()

	if shutdownErr != nil {
		return fmt.Errorf("server forced to shutdown: %w", shutdownErr)
	}
	log.Info().Msg("Server exiting")
	return nil
}
