package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	Addr                string
	DbDsn               string
	JwtSecret           string
	JwtAccessMinutes    int
	AllowedOriginsRaw   string
	PrintTimeoutSeconds int
	CashPrinter         string
	PrinterNamesRaw     string
	ReceiptHeader       string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:              getEnv("APP_ENV", "local"),
		Addr:                getEnv("APP_ADDR", ":8080"),
		DbDsn:               os.Getenv("DB_DSN"),
		JwtSecret:           os.Getenv("JWT_SECRET"),
		JwtAccessMinutes:    getEnvInt("JWT_ACCESS_MINUTES", 720),
		AllowedOriginsRaw:   getEnv("ALLOWED_ORIGINS", ""),
		PrintTimeoutSeconds: getEnvInt("PRINT_TIMEOUT_SECONDS", 15),
		CashPrinter:         os.Getenv("CASH_PRINTER"),
		PrinterNamesRaw:     os.Getenv("PRINTER_NAMES"),
		ReceiptHeader:       getEnv("RECEIPT_HEADER", "EL MEZAN"),
	}

	missing := []string{}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

// PrinterNames splits the comma-separated kitchen printer list.
func (c Config) PrinterNames() []string {
	if c.PrinterNamesRaw == "" {
		return nil
	}
	parts := strings.Split(c.PrinterNamesRaw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
