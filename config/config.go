// Package config loads application configuration from environment
// variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser Browser
	Harvest Harvest
	Price   Price
	Output  Output
	Log     Log
}

// Browser controls the Rod browser instance.
type Browser struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// DefaultProxy is the proxy URL for both the browser and the HTTP tier.
	DefaultProxy string

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// NavigationTimeout is the deadline for one page navigation.
	NavigationTimeout time.Duration // default: 25s
}

// Harvest tunes the list and detail passes.
type Harvest struct {
	// StartURLs is the list-page URL set to walk, comma separated in the
	// environment.
	StartURLs []string

	// MaxPages bounds how many list pages are walked per start URL.
	MaxPages int // default: 10

	// MaxListings caps total listings per run. Zero means no cap.
	MaxListings int

	// MaxRetries bounds bot-wall retries per page.
	MaxRetries int // default: 3

	// BackoffBase is the first bot-wall retry delay.
	BackoffBase time.Duration // default: 2s

	// VisitRPS paces detail-page visits (requests per second).
	VisitRPS float64 // default: 0.5

	// HTTPFirst tries the cheap TLS-fingerprint fetch before opening a
	// browser tab for each detail page.
	HTTPFirst bool // default: true
}

// Price holds the monetary knobs.
type Price struct {
	// Rate converts KRW to EUR.
	Rate float64 // default: 0.000615

	// BandMin/BandMax bound credible vehicle prices in KRW.
	BandMin int64 // default: 3,000,000
	BandMax int64 // default: 400,000,000
}

// Output selects the sinks.
type Output struct {
	// CSVPath is the CSV output file. Empty disables the CSV sink.
	CSVPath string // default: "listings.csv"

	// MySQLDSN enables the MySQL sink when non-empty.
	MySQLDSN string

	// MySQLTable is the target table name.
	MySQLTable string // default: "listings"
}

// Log controls structured logging.
type Log struct {
	Level  string // "debug", "info", "warn", "error"; default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Browser: Browser{
			Headless:          envBoolOr("AUTOSALLON_HEADLESS", true),
			DefaultProxy:      os.Getenv("AUTOSALLON_PROXY"),
			NoSandbox:         envBoolOr("AUTOSALLON_NO_SANDBOX", false),
			BrowserBin:        os.Getenv("AUTOSALLON_BROWSER_BIN"),
			MaxPages:          envIntOr("AUTOSALLON_MAX_TABS", 4),
			NavigationTimeout: envDurationOr("AUTOSALLON_NAV_TIMEOUT", 25*time.Second),
		},
		Harvest: Harvest{
			StartURLs:   envSliceOr("AUTOSALLON_START_URLS", nil),
			MaxPages:    envIntOr("AUTOSALLON_MAX_PAGES", 10),
			MaxListings: envIntOr("AUTOSALLON_MAX_LISTINGS", 0),
			MaxRetries:  envIntOr("AUTOSALLON_MAX_RETRIES", 3),
			BackoffBase: envDurationOr("AUTOSALLON_BACKOFF_BASE", 2*time.Second),
			VisitRPS:    envFloatOr("AUTOSALLON_VISIT_RPS", 0.5),
			HTTPFirst:   envBoolOr("AUTOSALLON_HTTP_FIRST", true),
		},
		Price: Price{
			Rate:    envFloatOr("AUTOSALLON_KRW_EUR", 0.000615),
			BandMin: envInt64Or("AUTOSALLON_PRICE_MIN_KRW", 3_000_000),
			BandMax: envInt64Or("AUTOSALLON_PRICE_MAX_KRW", 400_000_000),
		},
		Output: Output{
			CSVPath:    envOr("AUTOSALLON_CSV", "listings.csv"),
			MySQLDSN:   os.Getenv("AUTOSALLON_MYSQL_DSN"),
			MySQLTable: envOr("AUTOSALLON_MYSQL_TABLE", "listings"),
		},
		Log: Log{
			Level:  envOr("AUTOSALLON_LOG_LEVEL", "info"),
			Format: envOr("AUTOSALLON_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
