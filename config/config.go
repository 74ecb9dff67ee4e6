package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Run modes accepted in RUN_MODE.
const (
	ModeScrape = "scrape" // fetch the live page, then run the pipeline
	ModeSeed   = "seed"   // seed sample rows into the raw store, then run
	ModeETL    = "etl"    // skip collection, run against the existing raw store
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	RunMode   string
	SourceURL string

	RawDBPath     string
	CurrentDBPath string
	HistoryDBPath string
	MetaDBPath    string

	CSVOutputPath string
	ChromeBin     string

	MaxRetries      int
	FetchTimeoutSec int

	PublishToPostgres bool
	PostgresHost      string
	PostgresPort      string
	PostgresUser      string
	PostgresPassword  string
	PostgresDB        string
	PostgresSSLMode   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		RunMode:   getEnv("RUN_MODE", ModeScrape),
		SourceURL: getEnv("SOURCE_URL", "https://viraindo.com/notebook.html"),

		RawDBPath:     getEnv("RAW_DB_PATH", "data/database/raw/laptops_raw.db"),
		CurrentDBPath: getEnv("CURRENT_DB_PATH", "data/database/current/laptops_current.db"),
		HistoryDBPath: getEnv("HISTORY_DB_PATH", "data/database/history/laptops_history.db"),
		MetaDBPath:    getEnv("META_DB_PATH", "data/database/meta/laptops_meta.db"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/laptops_current.csv"),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		FetchTimeoutSec: getEnvInt("FETCH_TIMEOUT_SEC", 60),

		PublishToPostgres: getEnvBool("PUBLISH_TO_POSTGRES", false),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnv("POSTGRES_USER", "etl"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "etl123"),
		PostgresDB:        getEnv("POSTGRES_DB", "laptops_db"),
		PostgresSSLMode:   getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string for the warehouse sink.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
