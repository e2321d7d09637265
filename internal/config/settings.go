package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port           string
	DatabaseDSN    string
	AllowedOrigins []string
	HTTPTimeout    time.Duration
	PageTokenTTL   time.Duration

	NewsProxyURL string
	NewsFeedURL  string
	PriceAPIURL  string

	ChartSymbol   string
	ChartTheme    string
	ChartInterval string

	QuizAdvanceDelay time.Duration
}

// Load reads the settings from the environment, after merging an optional .env file.
func Load() Settings {
	if err := godotenv.Load(); err == nil {
		Logger.Debug("Loaded settings from .env")
	}

	return Settings{
		Port:           getEnv("PORT", "8080"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPTimeout:    getMillis("HTTP_TIMEOUT_MS", 10*time.Second),
		PageTokenTTL:   getMinutes("PAGE_TOKEN_TTL_MIN", 12*time.Hour),

		NewsProxyURL: getEnv("NEWS_PROXY_URL", "https://api.allorigins.win/get"),
		NewsFeedURL:  getEnv("NEWS_FEED_URL", "https://cointelegraph.com/rss/tag/bitcoin"),
		PriceAPIURL:  getEnv("PRICE_API_URL", "https://api.coindesk.com/v1/bpi/currentprice/BTC.json"),

		ChartSymbol:   getEnv("CHART_SYMBOL", "COINBASE:BTCUSD"),
		ChartTheme:    getEnv("CHART_THEME", "light"),
		ChartInterval: getEnv("CHART_INTERVAL", "D"),

		QuizAdvanceDelay: getMillis("QUIZ_ADVANCE_DELAY_MS", 1500*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getMillis(key string, fallback time.Duration) time.Duration {
	return getDuration(key, time.Millisecond, fallback)
}

func getMinutes(key string, fallback time.Duration) time.Duration {
	return getDuration(key, time.Minute, fallback)
}

func getDuration(key string, unit time.Duration, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		Logger.WithField("key", key).Warnf("Invalid duration %q, using default %s", raw, fallback)
		return fallback
	}
	return time.Duration(n) * unit
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
