package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	DatabaseURL   string
	LocalStoreDir string

	AnthropicAPIKey string
	AnthropicModel  string

	ChromePath string

	JobSearchScript  string
	PythonCandidates []string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GmailTokenFile     string

	AIRateLimit float64
	AIRateBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Printf("ANTHROPIC_API_KEY is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,

		DatabaseURL:   dbURL,
		LocalStoreDir: getEnv("LOCAL_STORE_DIR", "./data"),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		ChromePath: getEnv("CHROME_PATH", ""),

		JobSearchScript:  getEnv("JOBSEARCH_SCRIPT", "scripts/search-jobs.py"),
		PythonCandidates: splitAndTrim(getEnv("PYTHON_CANDIDATES", ".venv/bin/python3,python3.12,python3,python")),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		GmailTokenFile:     getEnv("GMAIL_TOKEN_FILE", "gmail_token.json"),

		AIRateLimit: getEnvFloat("AI_RATE_LIMIT", 1),
		AIRateBurst: getEnvInt("AI_RATE_BURST", 5),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			return parsed
		}
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
