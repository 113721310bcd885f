// Package api wires the HTTP surface: routing, middleware, and handler
// construction.
package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abduldattijo/biometricattendance/internal/api/handler"
	"github.com/abduldattijo/biometricattendance/internal/api/middleware"
	"github.com/abduldattijo/biometricattendance/internal/ws"
)

type Dependencies struct {
	Enrollment handler.EnrollmentService
	Attendance handler.AttendanceService
	Employees  handler.EmployeeService
	Hub        *ws.Hub
	DB         *pgxpool.Pool
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Biometric Attendance API",
		BodyLimit:    12 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	var db handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		db = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(db)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")

	enrollmentHandler := handler.NewEnrollmentHandler(r.deps.Enrollment, r.logger)
	v1.Post("/enrollments", enrollmentHandler.Start)
	v1.Get("/enrollments/:session_id", enrollmentHandler.Get)
	v1.Post("/enrollments/:session_id/frames", enrollmentHandler.SubmitFrame)
	v1.Delete("/enrollments/:session_id", enrollmentHandler.Cancel)

	attendanceHandler := handler.NewAttendanceHandler(r.deps.Attendance, r.logger)
	v1.Post("/checkins", attendanceHandler.Checkin)
	v1.Post("/checkins/manual", attendanceHandler.ManualCheckin)
	v1.Get("/attendance/today", attendanceHandler.Today)

	employeeHandler := handler.NewEmployeeHandler(r.deps.Employees, r.logger)
	v1.Get("/employees", employeeHandler.List)
	v1.Get("/employees/:employee_id", employeeHandler.Get)
	v1.Patch("/employees/:employee_id/active", employeeHandler.SetActive)
	v1.Delete("/employees/:employee_id", employeeHandler.Delete)

	// Live feedback streams: per-session for enrollment, global for the
	// attendance dashboard.
	v1.Get("/ws", ws.UpgradeMiddleware(), ws.Handler(r.deps.Hub))
	v1.Get("/ws/:session_id", ws.UpgradeMiddleware(), ws.Handler(r.deps.Hub))
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}

// ShutdownWithTimeout drains in-flight requests, forcing the server closed
// once the timeout elapses.
func (r *Router) ShutdownWithTimeout(timeout time.Duration) error {
	return r.app.ShutdownWithTimeout(timeout)
}
