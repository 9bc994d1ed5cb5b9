package main

import (
	"log"
	"net/http"

	"kycflow-go/config"
	"kycflow-go/database"
	"kycflow-go/handlers"
	"kycflow-go/kyc"
	"kycflow-go/middleware"
	"kycflow-go/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	config.ValidateConfig(cfg)

	if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
		log.Fatal("Failed to initialize JWT:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	kycService := kyc.NewService(kyc.NewGormRepository(db))
	h := handlers.NewHandlers(db, cfg, kycService)

	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.CORS)
	r.Use(middleware.RateLimit)

	// Public routes
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/health", h.HealthCheck).Methods("GET")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.JWTAuth)

	// User routes
	protected.HandleFunc("/user/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/user/profile", h.UpdateProfile).Methods("PUT")

	// KYC routes
	protected.HandleFunc("/kyc/status", h.GetKYCStatus).Methods("GET")
	protected.HandleFunc("/kyc/steps/{stepNumber}/submit", h.SubmitKYCStep).Methods("POST")

	// Admin routes
	adminRoutes := protected.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AdminAuth)
	adminRoutes.HandleFunc("/kyc/pending", h.GetPendingSteps).Methods("GET")
	adminRoutes.HandleFunc("/kyc/{accountID}", h.GetAccountKYC).Methods("GET")
	adminRoutes.HandleFunc("/kyc/{accountID}/steps/{stepNumber}/adjudicate", h.AdjudicateKYCStep).Methods("POST")
	adminRoutes.HandleFunc("/audit-logs", h.GetAuditLogs).Methods("GET")
	adminRoutes.HandleFunc("/users", h.GetAllUsers).Methods("GET")

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Database: %s", cfg.DatabaseURL)
	if cfg.Environment == "development" {
		log.Printf("Admin Code: %s", cfg.AdminCode)
	}
	log.Fatal(http.ListenAndServe(":"+port, r))
}
