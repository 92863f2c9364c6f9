package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "STATIC_DIR", "ALLOWED_ORIGIN",
		"SEND_BUFFER", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.AppPort != "3000" {
		t.Fatalf("порт по умолчанию %q", cfg.AppPort)
	}
	if cfg.LogLevel != "info" || cfg.LogJSON {
		t.Fatalf("логирование по умолчанию: %q json=%v", cfg.LogLevel, cfg.LogJSON)
	}
	if cfg.SendBuffer != 64 || cfg.RateLimitPerMinute != 120 || cfg.StaticDir != "public" {
		t.Fatalf("значения по умолчанию: %+v", cfg)
	}
	if cfg.DatabaseURL != "" || cfg.RedisAddr != "" {
		t.Fatalf("хранилища по умолчанию выключены: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SEND_BUFFER", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	cfg := Load()
	if cfg.AppPort != "8081" || !cfg.LogJSON || cfg.RedisDB != 3 {
		t.Fatalf("переопределения не применились: %+v", cfg)
	}
	if cfg.SendBuffer != 64 {
		t.Fatalf("неверное число должно давать значение по умолчанию, получили %d", cfg.SendBuffer)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Fatalf("лимит 0 должен отключать ограничение, получили %d", cfg.RateLimitPerMinute)
	}
}
