package config

import "time"

type App struct {
	Port            string        `env:"APP_PORT" default:"8080"`
	KioskBaseURL    string        `env:"KIOSK_BASE_URL,required"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	PollInterval    time.Duration `env:"SCAN_POLL_INTERVAL" default:"2s"`
	CaptureAttempts int           `env:"CAPTURE_ATTEMPTS" default:"15"`
	CaptureInterval time.Duration `env:"CAPTURE_INTERVAL" default:"1s"`
	ReturnHoldDelay time.Duration `env:"RETURN_HOLD_DELAY" default:"5s"`
	Env             string        `env:"APP_ENV" default:"dev"`
}
