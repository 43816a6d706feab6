package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port   string
	DBPath string

	LLMEndpoint          string
	LLMAPIKey            string
	LLMModel             string
	AdvisoryTimeout      time.Duration
	AdvisoryRetries      int
	AdvisoryBreakerFails int
	AdvisoryBreakerOpen  time.Duration

	CropCatalogXLSX   string
	LocationTableYAML string

	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string

	EmbEndpoint string
	EmbAPIKey   string
	EmbModel    string

	KBAllowedDomains []string
	DefaultLocale    string
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	num := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("[cfg] %s=%q is not a non-negative integer, using %d", k, v, def)
			return def
		}
		return n
	}
	ms := func(k string, def int) time.Duration { return time.Duration(num(k, def)) * time.Millisecond }

	var domains []string
	for _, d := range strings.Split(get("KB_ALLOWED_DOMAINS", ""), ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}

	cfg := AppConfig{
		Port:                 get("PORT", "8080"),
		DBPath:               get("DB_PATH", "agroscore.db"),
		LLMEndpoint:          get("LLM_ENDPOINT", ""),
		LLMAPIKey:            get("LLM_API_KEY", ""),
		LLMModel:             get("LLM_MODEL", "gpt-4o-mini"),
		AdvisoryTimeout:      ms("ADVISORY_TIMEOUT_MS", 8000),
		AdvisoryRetries:      num("ADVISORY_RETRIES", 2),
		AdvisoryBreakerFails: num("ADVISORY_BREAKER_FAILS", 3),
		AdvisoryBreakerOpen:  ms("ADVISORY_BREAKER_OPEN_MS", 30000),
		CropCatalogXLSX:      get("CROP_CATALOG_XLSX", ""),
		LocationTableYAML:    get("LOCATION_TABLE_YAML", ""),
		InfluxURL:            get("INFLUX_URL", ""),
		InfluxToken:          get("INFLUX_TOKEN", ""),
		InfluxOrg:            get("INFLUX_ORG", ""),
		InfluxBucket:         get("INFLUX_BUCKET", "agroscore"),
		EmbEndpoint:          get("EMB_ENDPOINT", ""),
		EmbAPIKey:            get("EMB_API_KEY", ""),
		EmbModel:             get("EMB_MODEL", "text-embedding-3-small"),
		KBAllowedDomains:     domains,
		DefaultLocale:        strings.ToLower(get("DEFAULT_LOCALE", "en")),
	}

	shown := cfg
	shown.LLMAPIKey = mask(cfg.LLMAPIKey)
	shown.InfluxToken = mask(cfg.InfluxToken)
	shown.EmbAPIKey = mask(cfg.EmbAPIKey)
	log.Printf("[cfg] %+v", shown)
	return cfg
}
