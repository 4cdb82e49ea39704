package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	defaultDatabasePath   = "biorhythm.db"
	defaultPort           = "8080"
	defaultJWTExpiryHours = 24
)

type Config struct {
	// database path (SQLite file)
	DatabasePath string

	// HTTP server settings
	Port           string
	AllowedOrigins []string

	// auth settings
	JWTSecret      string
	JWTExpiryHours int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", defaultDatabasePath)
	port := getEnvOrDefault("PORT", defaultPort)

	origins := strings.Split(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "insecure_development_secret_change_me"
		log.Printf("Warning: JWT_SECRET is not set, using an insecure development secret")
	}

	cfg := Config{
		DatabasePath:   dbPath,
		Port:           port,
		AllowedOrigins: origins,
		JWTSecret:      jwtSecret,
		JWTExpiryHours: getEnvIntOrDefault("JWT_EXPIRY_HOURS", defaultJWTExpiryHours),
	}

	return cfg, nil
}
