package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubmanager/internal/config"
	"clubmanager/internal/database"
	"clubmanager/internal/events"
	"clubmanager/internal/gateway"
	"clubmanager/internal/handlers"
	"clubmanager/internal/metrics"
	"clubmanager/internal/notify"
	"clubmanager/internal/repository"
	"clubmanager/internal/security"
	"clubmanager/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if cfg.TokenSigningKey == "" {
		log.Fatal("TOKEN_SIGNING_KEY must be set")
	}

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	memberRepo := repository.NewMemberRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	dueRepo := repository.NewDueRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Initialize outbound adapters
	ctx := context.Background()
	notifier, err := notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, memberRepo)
	if err != nil {
		log.Fatalf("Failed to initialize notifier: %v", err)
	}

	publisher, err := events.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.New(registry)

	// Initialize services
	feeService := service.NewFeeService(memberRepo, cfg.MonthlyBasePrice)
	enrollmentService := service.NewEnrollmentService(db, memberRepo, practiceRepo, enrollmentRepo, publisher, engineMetrics)
	retirementService := service.NewRetirementService(db, practiceRepo, enrollmentRepo, notifier, publisher, engineMetrics)
	debtService := service.NewDebtService(memberRepo, dueRepo, enrollmentRepo, practiceRepo, reservationRepo, paymentRepo, feeService)
	paymentService := service.NewPaymentService(dueRepo, enrollmentRepo, practiceRepo, reservationRepo, paymentRepo, gateway.NewStubGateway(""))

	tokens := security.NewTokenManager(cfg.TokenSigningKey, 24*time.Hour)

	// Initialize handlers
	middleware := handlers.NewMiddleware(tokens)
	memberHandler := handlers.NewMemberHandler(memberRepo, debtService, feeService)
	practiceHandler := handlers.NewPracticeHandler(practiceRepo, retirementService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, enrollmentRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reservationHandler := handlers.NewReservationHandler(reservationRepo, memberRepo)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Member routes
	mux.HandleFunc("POST /api/members", middleware.RequireAuth(memberHandler.Create))
	mux.HandleFunc("GET /api/members/{id}", middleware.RequireAuth(memberHandler.Get))
	mux.HandleFunc("GET /api/members/{id}/quota", middleware.RequireAuth(memberHandler.GetQuota))
	mux.HandleFunc("GET /api/members/{id}/debts", middleware.RequireAuth(memberHandler.ListDebts))
	mux.HandleFunc("GET /api/members/{id}/reservations", middleware.RequireAuth(reservationHandler.ListForMember))

	// Practice routes
	mux.HandleFunc("POST /api/practices", middleware.RequireAuth(practiceHandler.Create))
	mux.HandleFunc("GET /api/practices/{id}", middleware.RequireAuth(practiceHandler.Get))
	mux.HandleFunc("DELETE /api/practices/{id}", middleware.RequireAuth(practiceHandler.Retire))
	mux.HandleFunc("POST /api/practices/{id}/schedules", middleware.RequireAuth(practiceHandler.AddSchedule))
	mux.HandleFunc("POST /api/practices/{id}/trainers/{trainerId}", middleware.RequireAuth(practiceHandler.AssignTrainer))
	mux.HandleFunc("DELETE /api/practices/{id}/trainers/{trainerId}", middleware.RequireAuth(practiceHandler.UnassignTrainer))
	mux.HandleFunc("POST /api/trainers", middleware.RequireAuth(practiceHandler.CreateTrainer))

	// Enrollment routes
	mux.HandleFunc("POST /api/enrollments", middleware.RequireAuth(enrollmentHandler.Enroll))
	mux.HandleFunc("DELETE /api/enrollments", middleware.RequireAuth(enrollmentHandler.Withdraw))
	mux.HandleFunc("POST /api/enrollments/{id}/attendance", middleware.RequireAuth(enrollmentHandler.RecordAttendance))
	mux.HandleFunc("GET /api/enrollments/{id}/attendance", middleware.RequireAuth(enrollmentHandler.GetAttendance))

	// Payment and reservation routes
	mux.HandleFunc("POST /api/payments", middleware.RequireAuth(paymentHandler.Pay))
	mux.HandleFunc("POST /api/courts", middleware.RequireAuth(reservationHandler.CreateCourt))
	mux.HandleFunc("POST /api/reservations", middleware.RequireAuth(reservationHandler.CreateReservation))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
