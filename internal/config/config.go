package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"sheq-kpi/internal/snapshot"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Data                snapshot.Config
	DataPath            string
	LogDir              string
	CacheDir            string
	KPIConfigPath       string
	AttentionLimit      int
	EnableMermaidCharts bool
}

// Load reads .env files and the environment. Variables already set in the
// environment win over .env values.
func Load() (*AppConfig, error) {
	exeDir := loadDotEnv()

	// 1. Resolve the base directory everything else hangs off
	dataPath := getEnv("DATA_PATH", "")
	if dataPath == "" {
		dataPath = exeDir
	}
	if dataPath == "" {
		dataPath = "."
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs")),
		CacheDir:            getEnv("SHEQ_CACHE_DIR", filepath.Join(dataPath, "cache")),
		KPIConfigPath:       resolvePath(dataPath, getEnv("SHEQ_KPI_CONFIG", "")),
		AttentionLimit:      getEnvInt("SHEQ_ATTENTION_LIMIT", 50),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	// 2. Data source: a URL is used as-is, a relative path is anchored at DATA_PATH
	source := strings.TrimSpace(getEnv("SHEQ_DATA_SOURCE", snapshot.CacheFileName))
	if !isURL(source) {
		source = resolvePath(dataPath, source)
	}
	cfg.Data = snapshot.Config{
		Source:   source,
		CacheDir: cfg.CacheDir,
		Timeout:  time.Duration(getEnvInt("SHEQ_FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	// 3. Ensure directories exist
	for _, dir := range []string{cfg.LogDir, cfg.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create directory")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c *AppConfig) Validate() error {
	if c.Data.Source == "" {
		return fmt.Errorf("SHEQ_DATA_SOURCE is empty")
	}
	if isURL(c.Data.Source) {
		u, err := url.Parse(c.Data.Source)
		if err != nil || u.Host == "" {
			return fmt.Errorf("SHEQ_DATA_SOURCE is not a valid URL: %q", c.Data.Source)
		}
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("SHEQ_FETCH_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// loadDotEnv loads .env from the binary's directory, then from the working directory.
// It returns the binary's directory, or "" when it cannot be determined.
func loadDotEnv() string {
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}
	return exeDir
}

func isURL(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && intVal > 0 {
			return intVal
		}
	}
	return fallback
}
