package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config - настройки процесса из окружения (.env подхватывается, если есть)
type Config struct {
	AppPort   string
	LogLevel  string
	LogJSON   bool
	StaticDir string

	// пустой = любой Origin
	AllowedOrigin string
	// размер буфера исходящих сообщений на подключение
	SendBuffer int

	// история матчей; пустая строка отключает запись
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// лимит запросов /ws и /api на IP в минуту, 0 отключает
	RateLimitPerMinute int
}

// Load читает .env (если есть) и переменные окружения
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:            getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogJSON:            strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		StaticDir:          getEnv("STATIC_DIR", "public"),
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		SendBuffer:         getEnvInt("SEND_BUFFER", 64),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
