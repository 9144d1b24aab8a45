// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecretKey string

	// OpenAI-compatible endpoint used for completions, Whisper
	// transcription, and vision prompts.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	VisionModel   string

	// WolframAlpha Short Answers API.
	WolframAppID string

	// Blob storage: files land under BlobRoot and are served back at
	// PublicBaseURL/uploads/.
	BlobRoot      string
	PublicBaseURL string

	DatabasePath string
	Environment  string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "4000"),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		ChatModel:     getEnv("CHAT_MODEL", "gpt-4o"),
		VisionModel:   getEnv("VISION_MODEL", "gpt-4o"),
		WolframAppID:  getEnv("WOLFRAM_API_KEY", ""),
		BlobRoot:      getEnv("BLOB_ROOT", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:4000"),
		DatabasePath:  getEnv("DATABASE_PATH", "carelink.db"),
		Environment:   env,
	}

	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if cfg.WolframAppID == "" {
			missing = append(missing, "WOLFRAM_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
