package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is a convenience for dev; absence is not an error.
	_ = godotenv.Load()

	cfg := App{
		Port:            getenv("APP_PORT", "8080"),
		KioskBaseURL:    must("KIOSK_BASE_URL"),
		JWTSecret:       getenv("JWT_SECRET", "local_dev_secret"),
		PollInterval:    getdur("SCAN_POLL_INTERVAL", 2*time.Second),
		CaptureAttempts: getint("CAPTURE_ATTEMPTS", 15),
		CaptureInterval: getdur("CAPTURE_INTERVAL", time.Second),
		ReturnHoldDelay: getdur("RETURN_HOLD_DELAY", 5*time.Second),
		Env:             getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("bad int env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("bad duration env, using default", "key", k, "value", v)
		return def
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
