package config

import (
	"os"
	"strconv"
	"time"
)

// Upstream endpoints for the scheduling site
const (
	// Login page of the scheduling site
	LoginURL = "https://www.usvisascheduling.com/en-US/login/"

	// Schedule page template, parameterized by appointment group id
	ScheduleURLTemplate = "https://www.usvisascheduling.com/en-US/schedule-group/%s/payment/"

	// Slot API template, parameterized by appointment group id and a cache-busting token
	SlotsAPITemplate = "https://www.usvisascheduling.com/en-US/api/v1/schedule-group/get-family-consular-schedule-entries?appd=%s&cacheString=%s"

	// Desktop user agent presented by the headless browser
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds the service configuration, read once at startup
type Config struct {
	Port      string
	APISecret string

	// Per-step bounds on browser interactions
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	SettleDelay       time.Duration
	CheckTimeout      time.Duration

	// Cap on concurrent browser sessions
	MaxSessions  int64
	QueueTimeout time.Duration
}

// Load builds the configuration from the environment, applying defaults for
// anything unset
func Load() Config {
	return Config{
		Port:              envString("PORT", "3000"),
		APISecret:         envString("API_SECRET", "change-this-secret"),
		NavigationTimeout: envSeconds("NAVIGATION_TIMEOUT_SECONDS", 60*time.Second),
		SelectorTimeout:   envSeconds("SELECTOR_TIMEOUT_SECONDS", 30*time.Second),
		SettleDelay:       envSeconds("SETTLE_DELAY_SECONDS", 3*time.Second),
		CheckTimeout:      envSeconds("CHECK_TIMEOUT_SECONDS", 180*time.Second),
		MaxSessions:       envInt64("MAX_SESSIONS", 2),
		QueueTimeout:      envSeconds("QUEUE_TIMEOUT_SECONDS", 30*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envSeconds(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
