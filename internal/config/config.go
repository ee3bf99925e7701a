package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv          string
	JobName         string
	DBURL           string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnLifetime  time.Duration
	DataDir         string
	SeasonCSVDir    string
	EventsDir       string
	MatchesDir      string
	RefereeXLSXPath string
	RefereeSheet    string

	FootballDataEnabled    bool
	FootballDataBaseURL    string
	FootballDataToken      string
	FootballDataTimeout    time.Duration
	FootballDataMaxRetries int
	SeasonStart            int

	StagingWorkers int
	MockStatsSeed  int64
	MockStatsRows  int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	dbMaxOpen, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	dbMaxIdle, err := getEnvAsInt("DB_MAX_IDLE_CONNS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	dbConnLifetime, err := getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_CONN_MAX_LIFETIME: %w", err)
	}

	dataDir := getEnv("DATA_DIR", "data/raw")

	fbEnabled, err := strconv.ParseBool(getEnv("FOOTBALL_DATA_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_ENABLED: %w", err)
	}
	fbToken := strings.TrimSpace(getEnv("FOOTBALL_DATA_TOKEN", ""))
	if fbEnabled && fbToken == "" {
		return Config{}, fmt.Errorf("FOOTBALL_DATA_TOKEN is required when FOOTBALL_DATA_ENABLED=true")
	}
	fbTimeout, err := getEnvAsDuration("FOOTBALL_DATA_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_TIMEOUT: %w", err)
	}
	fbMaxRetries, err := getEnvAsInt("FOOTBALL_DATA_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse FOOTBALL_DATA_MAX_RETRIES: %w", err)
	}
	seasonStart, err := getEnvAsInt("SEASON_START", 2023)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_START: %w", err)
	}

	stagingWorkers, err := getEnvAsInt("STAGING_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse STAGING_WORKERS: %w", err)
	}
	if stagingWorkers < 1 {
		return Config{}, fmt.Errorf("STAGING_WORKERS must be at least 1")
	}

	mockSeed, err := getEnvAsInt("MOCK_STATS_SEED", 42)
	if err != nil {
		return Config{}, fmt.Errorf("parse MOCK_STATS_SEED: %w", err)
	}
	mockRows, err := getEnvAsInt("MOCK_STATS_ROWS", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse MOCK_STATS_ROWS: %w", err)
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:          appEnv,
		JobName:         getEnv("JOB_NAME", "epl_warehouse_etl"),
		DBURL:           dbURL,
		DBMaxOpenConns:  dbMaxOpen,
		DBMaxIdleConns:  dbMaxIdle,
		DBConnLifetime:  dbConnLifetime,
		DataDir:         dataDir,
		SeasonCSVDir:    getEnv("SEASON_CSV_DIR", dataDir+"/csv"),
		EventsDir:       getEnv("EVENTS_DIR", dataDir+"/events"),
		MatchesDir:      getEnv("MATCHES_DIR", dataDir+"/matches"),
		RefereeXLSXPath: getEnv("REFEREE_XLSX_PATH", dataDir+"/xlsx/referees.xlsx"),
		RefereeSheet:    getEnv("REFEREE_SHEET", "Referees"),

		FootballDataEnabled:    fbEnabled,
		FootballDataBaseURL:    getEnv("FOOTBALL_DATA_BASE_URL", "https://api.football-data.org/v4"),
		FootballDataToken:      fbToken,
		FootballDataTimeout:    fbTimeout,
		FootballDataMaxRetries: fbMaxRetries,
		SeasonStart:            seasonStart,

		StagingWorkers: stagingWorkers,
		MockStatsSeed:  int64(mockSeed),
		MockStatsRows:  mockRows,

		LogLevel: logLevel,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case EnvDev, EnvStage, EnvProd:
		return v, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", v)
	}
}
