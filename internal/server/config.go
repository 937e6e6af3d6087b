package server

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"intertask/internal/logging"
)

type Config struct {
	Port        string
	ApiGinMode  string
	LogDir      string
	InitSQLPath string

	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string

	SessionSecret string

	// database
	DBAddress  string
	DBUser     string
	DBPassword string
	DBName     string

	// generative service; an empty key disables AI and forces fallback
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration
}

func loadConfig(path string) Config {
	if err := godotenv.Load(path); err != nil {
		logging.Logger.Infof("no config file at %s, using environment and defaults", path)
	}

	return Config{
		Port:        getEnv("PORT", "5080"),
		ApiGinMode:  getEnv("GIN_MODE", "debug"),
		LogDir:      getEnv("LOG_DIR", ""),
		InitSQLPath: getEnv("INIT_SQL_PATH", "./internal/server/db/init.sql"),

		AllowedOrigins: getEnvFields("ALLOW_ORIGINS", []string{"*"}),
		AllowedMethods: getEnvFields("ALLOW_METHODS", []string{"*"}),
		AllowedHeaders: getEnvFields("ALLOW_HEADERS", []string{"*"}),

		SessionSecret: getEnv("SESSION_SECRET", "inter-team-task-secret"),

		DBAddress:  getEnv("DB_ADDRESS", "localhost:5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "intertask"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "models/gemini-2.5-flash"),
		AITimeout:    time.Duration(getIntEnv("AI_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(env, fallback string) string {
	if value, exists := os.LookupEnv(env); exists {
		return value
	}

	return fallback
}

func getEnvFields(env string, fallback []string) []string {
	if value, exists := os.LookupEnv(env); exists {
		return strings.Split(strings.TrimSpace(value), ",")
	}

	return fallback
}

func getIntEnv(env string, fallback int) int {
	if value, exists := os.LookupEnv(env); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}

	return fallback
}
