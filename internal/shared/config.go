package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	ExportsBase string
	ExportsKey  string
	AirportCode string
	Workers     int
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/terminalplus?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		ExportsBase: env("EXPORTS_BASE_URL", "https://exports.terminal.plus/v1"),
		ExportsKey:  env("EXPORTS_API_KEY", ""),
		AirportCode: env("AIRPORT_CODE", "SIN"),
		Workers:     atoi("INGEST_WORKERS", 8),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.ExportsKey == "" {
		log.Warn().Msg("EXPORTS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
