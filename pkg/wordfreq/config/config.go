// Package config loads runtime settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
)

// Config holds the settings shared by the command-line tools.
type Config struct {
	DBPath         string `yaml:"db_path"`
	BlobDir        string `yaml:"blob_dir"`
	FontPath       string `yaml:"font_path"`
	DictionaryPath string `yaml:"dictionary_path"`
	StoplistPath   string `yaml:"stoplist_path"`
	MinTokenLength int    `yaml:"min_token_length"`
	StorageLimit   int    `yaml:"storage_limit"`
	ReportLimit    int    `yaml:"report_limit"`
	LogLevel       string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:         "wordfreq.db",
		BlobDir:        "uploads",
		FontPath:       "assets/fonts/HindSiliguri-Regular.ttf",
		MinTokenLength: ingest.DefaultMinTokenLength,
		StorageLimit:   ingest.DefaultStorageLimit,
		ReportLimit:    report.DefaultReportLimit,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads a .env file if one is present and applies WORDFREQ_*
// overrides to cfg. Unparseable numbers leave the current value in place.
func FromEnv(cfg *Config) *Config {
	_ = godotenv.Load()

	cfg.DBPath = getEnv("WORDFREQ_DB", cfg.DBPath)
	cfg.BlobDir = getEnv("WORDFREQ_BLOB_DIR", cfg.BlobDir)
	cfg.FontPath = getEnv("WORDFREQ_FONT", cfg.FontPath)
	cfg.DictionaryPath = getEnv("WORDFREQ_DICTIONARY", cfg.DictionaryPath)
	cfg.StoplistPath = getEnv("WORDFREQ_STOPLIST", cfg.StoplistPath)
	cfg.MinTokenLength = getEnvInt("WORDFREQ_MIN_TOKEN_LENGTH", cfg.MinTokenLength)
	cfg.StorageLimit = getEnvInt("WORDFREQ_STORAGE_LIMIT", cfg.StorageLimit)
	cfg.ReportLimit = getEnvInt("WORDFREQ_REPORT_LIMIT", cfg.ReportLimit)
	cfg.LogLevel = getEnv("WORDFREQ_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

// Validate reports settings that cannot produce a working pipeline.
func (c *Config) Validate() error {
	var errs []error
	if c.MinTokenLength < 1 {
		errs = append(errs, fmt.Errorf("min_token_length must be at least 1, got %d", c.MinTokenLength))
	}
	if c.StorageLimit <= 0 {
		errs = append(errs, fmt.Errorf("storage_limit must be positive, got %d", c.StorageLimit))
	}
	if c.ReportLimit <= 0 {
		errs = append(errs, fmt.Errorf("report_limit must be positive, got %d", c.ReportLimit))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if strings.TrimSpace(c.BlobDir) == "" {
		errs = append(errs, errors.New("blob_dir is required"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Loader returns a component loader for this configuration.
func (c *Config) Loader() *Loader {
	return &Loader{
		StoplistPath:   c.StoplistPath,
		DictionaryPath: c.DictionaryPath,
		FontPath:       c.FontPath,
		MinTokenLength: c.MinTokenLength,
		StorageLimit:   c.StorageLimit,
	}
}

// Stoplist represents an extra stopword list file.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}

// Dictionary represents a translation dictionary file mapping English
// words to Bengali candidates.
type Dictionary struct {
	Terms map[string][]string `yaml:"terms"`
}

// LoadDictionary loads translation candidates from a YAML file
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
