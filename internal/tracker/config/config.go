package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI               string
	Port                   string
	DBName                 string
	AssetsCollection       string
	AssignmentsCollection  string
	MaintenanceCollection  string
	TransfersCollection    string
	BranchesCollection     string
	DepartmentsCollection  string
	LocationsCollection    string
	AuditLogsCollection    string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
}

func LoadConfig() (*Config, error) {
	// Best effort: a missing .env file is fine, env vars win either way.
	_ = godotenv.Load()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		MongoURI:              mongoURI,
		Port:                  port,
		DBName:                getEnv("DB_NAME", "assettrack_db"),
		AssetsCollection:      getEnv("COLLECTION_ASSETS", "assets"),
		AssignmentsCollection: getEnv("COLLECTION_ASSIGNMENTS", "assignments"),
		MaintenanceCollection: getEnv("COLLECTION_MAINTENANCE", "maintenance_records"),
		TransfersCollection:   getEnv("COLLECTION_TRANSFERS", "transfers"),
		BranchesCollection:    getEnv("COLLECTION_BRANCHES", "branches"),
		DepartmentsCollection: getEnv("COLLECTION_DEPARTMENTS", "departments"),
		LocationsCollection:   getEnv("COLLECTION_LOCATIONS", "locations"),
		AuditLogsCollection:   getEnv("COLLECTION_AUDIT_LOGS", "audit_logs"),
		ReadTimeout:           getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:          getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
