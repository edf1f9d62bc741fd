package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Dream    DreamConfig
	Sync     SyncConfig
}

type AppConfig struct {
	Environment  string
	LogFilePath  string
	AuditLogPath string
	NatsURL      string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "huggingface", or "none" (forces deterministic extraction)
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
	LLMApiKey     string
}

// DreamConfig holds the tunables of the nightly reflection run.
type DreamConfig struct {
	StalenessWindow    time.Duration // a completed run younger than this suppresses RunIfNeeded
	HistoryWindowDays  int           // rolling window handed to the reflection engine
	RequiredQuestions  int           // onboarding questions needed for graduation
	MinInteractionDays int           // distinct interaction days needed for graduation
}

type SyncConfig struct {
	CoolDown   time.Duration // skip a provider synced more recently than this
	MaxItems   int           // per-provider item cap per run
	AuditTopic string        // watermill topic for per-item audit messages
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment:  getEnv("GO_ENV", "development"),
			LogFilePath:  getEnv("LOG_FILE_PATH", "app.log.csv"),
			AuditLogPath: getEnv("DREAM_AUDIT_LOG_PATH", "logs/dream.log"),
			NatsURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMApiKey:     getEnv("LLM_API_KEY", ""),
		},
		Dream: DreamConfig{
			StalenessWindow:    getEnvAsDuration("DREAM_STALENESS", 18*time.Hour),
			HistoryWindowDays:  getEnvAsInt("DREAM_HISTORY_DAYS", 7),
			RequiredQuestions:  getEnvAsInt("ONBOARDING_REQUIRED_QUESTIONS", 17),
			MinInteractionDays: getEnvAsInt("ONBOARDING_MIN_DAYS", 7),
		},
		Sync: SyncConfig{
			CoolDown:   getEnvAsDuration("SYNC_COOLDOWN", 6*time.Hour),
			MaxItems:   getEnvAsInt("SYNC_MAX_ITEMS", 50),
			AuditTopic: getEnv("SYNC_AUDIT_TOPIC_NAME", "SYNC_ITEM_PROCESSED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil && value > 0 {
		return value
	}
	return fallback
}
