package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"mesalibre/internal/api"
	"mesalibre/internal/auth"
	"mesalibre/internal/clock"
	"mesalibre/internal/db"
	"mesalibre/internal/repository"
	"mesalibre/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Migrate(ctx, database); err != nil {
		cancel()
		log.Fatalf("Failed to run migrations: %v", err)
	}
	cancel()

	clk := clock.NewSystem()

	reservationRepo := repository.NewReservationRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	adminRepo := repository.NewAdminRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)
	jobRepo := repository.NewJobRepository(database)

	sender := service.NewSenderService()
	availabilitySvc := service.NewAvailabilityService(reservationRepo, settingsRepo, clk)
	reservationSvc := service.NewReservationService(reservationRepo, settingsRepo, sender, clk)
	adminSvc := service.NewAdminService(adminRepo, settingsRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo, clk)

	userHandler := api.NewUserReservationHandler(availabilitySvc, reservationSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/availability", userHandler.HasAnyAvailability).Methods("GET")
	r.HandleFunc("/api/availability/range", userHandler.AvailabilityRange).Methods("GET")
	r.HandleFunc("/api/availability/slots", userHandler.ListAvailableSlots).Methods("GET")
	r.HandleFunc("/api/availability/check", userHandler.CheckSlot).Methods("POST")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", userHandler.GetReservation).Methods("GET")

	// Admin endpoints (protected)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/register", adminAuthHandler.CreateAdmin).Methods("POST")
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}/cancel", adminHandler.CancelReservation).Methods("POST")
	admin.HandleFunc("/settings", adminHandler.GetSettings).Methods("GET")
	admin.HandleFunc("/settings", adminHandler.UpdateSettings).Methods("PUT")

	// Completion sweep: past seatings move from confirmed to completed.
	c := cron.New()
	if _, err := c.AddFunc("@every 15m", func() {
		sweepCtx, sweepCancel := context.WithTimeout(context.Background(), time.Minute)
		defer sweepCancel()
		if err := jobSvc.CompleteFinishedReservations(sweepCtx); err != nil {
			log.Printf("Completion sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule completion sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
