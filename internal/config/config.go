package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Nats      NatsConfig
	OpenAI    OpenAIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string
}

type RedisConfig struct {
	URL string
}

type NatsConfig struct {
	URL     string
	Enabled bool
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

type AssistantConfig struct {
	DefaultModel string
	StyleModel   string
	// StreamEditThreshold suppresses in-place message edits while a
	// streamed reply grows by fewer characters than this.
	StreamEditThreshold int
	// MessageCharCap is the largest reply the channel accepts in one
	// message; longer output is split.
	MessageCharCap int
	// OutlineIntentMaxLen short-circuits outline-intent classification:
	// anything longer is never an intent to enter outline mode.
	OutlineIntentMaxLen int
	LanguageHint        string
	ClassifyTags        bool
	StreamReplies       bool
	FfmpegPath          string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "voicenote.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Nats: NatsConfig{
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Enabled: getEnvAsBool("NATS_ENABLED", false),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Assistant: AssistantConfig{
			DefaultModel:        getEnv("ASSISTANT_DEFAULT_MODEL", "gpt-3.5-turbo"),
			StyleModel:          getEnv("ASSISTANT_STYLE_MODEL", "gpt-4"),
			StreamEditThreshold: getEnvAsInt("ASSISTANT_STREAM_EDIT_THRESHOLD", 50),
			MessageCharCap:      getEnvAsInt("ASSISTANT_MESSAGE_CHAR_CAP", 4096),
			OutlineIntentMaxLen: getEnvAsInt("ASSISTANT_OUTLINE_INTENT_MAX_LEN", 30),
			LanguageHint:        getEnv("ASSISTANT_LANGUAGE_HINT", "简体中文"),
			ClassifyTags:        getEnvAsBool("ASSISTANT_CLASSIFY_TAGS", true),
			StreamReplies:       getEnvAsBool("ASSISTANT_STREAM_REPLIES", true),
			FfmpegPath:          getEnv("FFMPEG_PATH", "ffmpeg"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
