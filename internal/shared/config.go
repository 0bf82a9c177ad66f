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

	SheetID      string
	SheetRange   string
	SAJSON       string
	SAEmail      string
	SAPrivateKey string
	SheetsRPS    int

	ContactEmail  string
	WhatsAppPhone string

	CacheTTL time.Duration
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
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		SheetID:       env("SHEET_ID", ""),
		SheetRange:    env("SHEET_RANGE", "experiences!A1:AG"),
		SAJSON:        env("GOOGLE_SA_JSON", ""),
		SAEmail:       env("GOOGLE_SA_EMAIL", ""),
		SAPrivateKey:  env("GOOGLE_SA_PRIVATE_KEY", ""),
		SheetsRPS:     atoi("SHEETS_RPS", 5),
		ContactEmail:  env("CONTACT_EMAIL", "contacto@example.com"),
		WhatsAppPhone: env("WHATSAPP_PHONE", "549XXXXXXXXXX"),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	if c.SheetID == "" {
		log.Warn().Msg("SHEET_ID is empty")
	}
	if c.SAJSON == "" && (c.SAEmail == "" || c.SAPrivateKey == "") {
		log.Warn().Msg("no Google service account credentials configured")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
