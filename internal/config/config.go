package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MrJJimenez/awwjobs/internal/models"
	"github.com/MrJJimenez/awwjobs/internal/network"
	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "awwjobs"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"

	DefaultAddr    = "127.0.0.1:8000"
	DefaultAppName = "awwwards-jobs-scraper"
)

// Config holds runtime settings. Values come from the defaults, then the optional
// config file, then AWWJOBS_* environment variables.
type Config struct {
	SourceURL      string  `json:"source_url"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	Concurrency    int     `json:"concurrency"`
	UserAgent      string  `json:"user_agent"`
	RateLimit      float64 `json:"rate_limit"`
	Burst          int     `json:"burst"`
	Addr           string  `json:"addr"`
	AppName        string  `json:"app_name"`
}

func DefaultConfig() Config {
	return Config{
		SourceURL:      scraper.DefaultSourceURL,
		TimeoutSeconds: int(network.DefaultTimeout / time.Second),
		Concurrency:    network.DefaultConcurrency,
		UserAgent:      network.DefaultUserAgent,
		RateLimit:      0,
		Burst:          1,
		Addr:           DefaultAddr,
		AppName:        DefaultAppName,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := DefaultConfig()
		applyEnv(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile reads a JSON5 config file at path. A missing or empty file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.SourceURL = envString("AWWJOBS_SOURCE_URL", cfg.SourceURL)
	cfg.TimeoutSeconds = envInt("AWWJOBS_TIMEOUT", cfg.TimeoutSeconds)
	cfg.Concurrency = envInt("AWWJOBS_CONCURRENCY", cfg.Concurrency)
	cfg.UserAgent = envString("AWWJOBS_USER_AGENT", cfg.UserAgent)
	cfg.RateLimit = envFloat("AWWJOBS_RATE_LIMIT", cfg.RateLimit)
	cfg.Burst = envInt("AWWJOBS_BURST", cfg.Burst)
	cfg.Addr = envString("AWWJOBS_ADDR", cfg.Addr)
	cfg.AppName = envString("AWWJOBS_APP_NAME", cfg.AppName)
}

// ScraperConfig converts the settings into the pipeline's options.
func (c Config) ScraperConfig(proxies []string) models.ScraperConfig {
	return models.ScraperConfig{
		SourceURL:   scraper.NormalizeBase(c.SourceURL),
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
		Concurrency: c.Concurrency,
		UserAgent:   c.UserAgent,
		Proxies:     proxies,
		RateLimit:   c.RateLimit,
		Burst:       c.Burst,
	}
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies resolves proxy URLs from the flag, then AWWJOBS_PROXIES, then proxies.txt.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("AWWJOBS_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
