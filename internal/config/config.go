package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"

type Config struct {
	BaseURL        string
	MaxPages       int
	PageDelay      time.Duration
	UserAgent      string
	ConversionRate float64

	CSVPath     string
	DatabaseURL string
	DBTable     string
	SheetPath   string
	SheetName   string
	SaveCSV     bool
	SaveDB      bool
	SaveSheet   bool

	RedisURL    string
	ReportTTL   time.Duration
	MetricsPort string
	LogLevel    string
}

func Load() *Config {
	// .env na raiz do projeto, depois no diretório atual
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		BaseURL:        getEnv("BASE_URL", "https://fashion-studio.dicoding.dev"),
		MaxPages:       getEnvInt("MAX_PAGES", 50),
		PageDelay:      getEnvDuration("PAGE_DELAY", 2*time.Second),
		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		ConversionRate: getEnvFloat("CONVERSION_RATE", 16000),

		CSVPath:     getEnv("CSV_PATH", "products.csv"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBTable:     getEnv("DB_TABLE", "fashion_products"),
		SheetPath:   getEnv("SHEET_PATH", "products.xlsx"),
		SheetName:   getEnv("SHEET_NAME", "Sheet1"),
		SaveCSV:     getEnvBool("SAVE_CSV", true),
		SaveDB:      getEnvBool("SAVE_DB", true),
		SaveSheet:   getEnvBool("SAVE_SHEET", true),

		RedisURL:    os.Getenv("REDIS_URL"),
		ReportTTL:   getEnvDuration("REPORT_TTL", 24*time.Hour),
		MetricsPort: os.Getenv("METRICS_PORT"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return d
}

func getEnvFloat(k string, d float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(k), 64); err == nil {
		return v
	}
	return d
}

func getEnvBool(k string, d bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return v
	}
	return d
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return v
	}
	return d
}
