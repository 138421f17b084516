package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                  string
	AllowedOrigin         string
	CatalogPath           string
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	SessionTTLMinutes     int
	AuthSecret            string
	AccessTokenTTLMinutes int
	APIUser               string
	APIPassword           string
	LLM                   LLMConfig
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "60"))
	if err != nil || sessionTTL < 1 {
		sessionTTL = 60
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 64)
	if err != nil || temperature < 0 || temperature > 2 {
		temperature = 0.7
	}
	maxTokens, err := strconv.Atoi(getEnv("LLM_MAX_TOKENS", "1000"))
	if err != nil || maxTokens < 1 {
		maxTokens = 1000
	}

	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		AllowedOrigin:         getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		CatalogPath:           os.Getenv("CATALOG_PATH"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		SessionTTLMinutes:     sessionTTL,
		AuthSecret:            strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes: tokenTTL,
		APIUser:               getEnv("API_USER", "demo"),
		APIPassword:           os.Getenv("API_PASSWORD"),
		LLM: LLMConfig{
			APIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			BaseURL:     strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature: temperature,
			MaxTokens:   maxTokens,
		},
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
