package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	StoreDriver   string
	SQLitePath    string
	DatabaseURL   string
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	GraphEnabled  bool
	DexDir        string
	WorkerCount   int
	BatchSize     int
	StrictLines   bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	return &Config{
		StoreDriver:   getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "lumidex.db"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/lumidex?sslmode=disable"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		GraphEnabled:  getEnvBool("GRAPH_ENABLED", false),
		DexDir:        getEnv("DEX_DIR", "pokedex"),
		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		BatchSize:     getEnvInt("BATCH_SIZE", 50),
		StrictLines:   getEnvBool("STRICT_LINES", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid boolean, using default")
		return fallback
	}
	return b
}
