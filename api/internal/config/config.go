package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	ModelVersion string
	CacheBackend string // memory | postgres
	RandomSeed   uint64 // 0 — от времени

	LabelStudioURL    string
	LabelStudioAPIKey string
	LocalFilesRoot    string
	MediaDir          string
	ModelDir          string

	BasicAuthUser string
	BasicAuthPass string

	TelegramBotToken string
	TelegramChatID   int64
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt64(k string, def int64) int64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("config: bad %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func getEnvUint64(k string, def uint64) uint64 {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Printf("config: bad %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "9090"),

		ModelVersion: getEnv("MODEL_VERSION", "0.0.1"),
		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		RandomSeed:   getEnvUint64("RANDOM_SEED", 0),

		LabelStudioURL:    getEnv("LABEL_STUDIO_URL", ""),
		LabelStudioAPIKey: getEnv("LABEL_STUDIO_API_KEY", ""),
		LocalFilesRoot:    getEnv("LOCAL_FILES_DOCUMENT_ROOT", ""),
		MediaDir:          getEnv("MEDIA_DATA_DIR", ""),
		ModelDir:          getEnv("MODEL_DIR", ""),

		BasicAuthUser: getEnv("BASIC_AUTH_USER", ""),
		BasicAuthPass: getEnv("BASIC_AUTH_PASS", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),
	}
}
