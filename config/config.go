package config

import (
	"log"
	"os"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	AdminCode   string
	Port        string
	Environment string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", "kycflow.db"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		AdminCode:   getEnv("ADMIN_CODE", "KYCFLOW_ADMIN_2025"),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) {
	if len(cfg.JWTSecret) < 32 {
		log.Printf("WARNING: JWT_SECRET should be at least 32 characters for security")
	}
	if cfg.Environment == "production" && cfg.AdminCode == "KYCFLOW_ADMIN_2025" {
		log.Printf("WARNING: Change ADMIN_CODE in production environment")
	}
}
