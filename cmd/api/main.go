package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abduldattijo/biometricattendance/internal/api"
	"github.com/abduldattijo/biometricattendance/internal/config"
	"github.com/abduldattijo/biometricattendance/internal/database"
	"github.com/abduldattijo/biometricattendance/internal/enroll"
	"github.com/abduldattijo/biometricattendance/internal/match"
	"github.com/abduldattijo/biometricattendance/internal/pose"
	"github.com/abduldattijo/biometricattendance/internal/provider"
	"github.com/abduldattijo/biometricattendance/internal/quality"
	"github.com/abduldattijo/biometricattendance/internal/repository"
	"github.com/abduldattijo/biometricattendance/internal/service"
	"github.com/abduldattijo/biometricattendance/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Biometric Attendance API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	// Database pool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Face analysis backend
	faceProvider, err := provider.New(provider.Type(cfg.ProviderType), provider.Options{
		InsightURL: cfg.InsightURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create face provider: %w", err)
	}

	// Decision components
	evaluator := quality.NewEvaluator(quality.Thresholds{
		MinBlur:         cfg.MinBlur,
		MinBrightness:   cfg.MinBrightness,
		MaxBrightness:   cfg.MaxBrightness,
		MinContrast:     cfg.MinContrast,
		MinFacePct:      cfg.MinFacePct,
		MaxFacePct:      cfg.MaxFacePct,
		MaxCenterOffset: cfg.MaxCenterOffset,
	})
	estimator := pose.NewEstimator(pose.BuildBands(pose.BandConfig{
		FrontTolerance: cfg.FrontToleranceDeg,
		TurnMin:        cfg.TurnMinDeg,
		TurnMax:        cfg.TurnMaxDeg,
		TiltMin:        cfg.TiltMinDeg,
		TiltMax:        cfg.TiltMaxDeg,
	}))
	validator := enroll.NewValidator(evaluator, estimator)
	matcher := match.NewMatcher(match.Options{
		Threshold:        cfg.MatchThreshold,
		TopK:             cfg.MatchTopK,
		AmbiguityEpsilon: cfg.AmbiguityEpsilon,
	})

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(pool)
	embeddingRepo := repository.NewEmbeddingRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// Live feedback hub
	hub := ws.NewHub()
	go hub.Run()

	// Services
	enrollmentService := service.NewEnrollmentService(
		validator, faceProvider, employeeRepo, embeddingRepo, hub, logger,
		service.EnrollmentConfig{
			Poses:      cfg.PoseSequence(),
			HoldFrames: cfg.HoldFrames,
			Countdown:  cfg.CountdownTicks,
		},
	)
	attendanceService := service.NewAttendanceService(
		faceProvider, matcher, employeeRepo, embeddingRepo, attendanceRepo,
		hub, logger, cfg.DuplicateWindow,
	)
	employeeService := service.NewEmployeeService(employeeRepo, embeddingRepo, logger)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		Enrollment: enrollmentService,
		Attendance: attendanceService,
		Employees:  employeeService,
		Hub:        hub,
		DB:         pool,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown: drain in-flight requests, force-close after 10s.
	logger.Info("shutting down server...")
	if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	logger.Info("server stopped")

	return nil
}
