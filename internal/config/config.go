package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration. Values load from
// environment variables (RETAIL_ prefix) with an optional YAML file overlay.
// Unrecognized keys in either source are ignored.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Fetch    FetchConfig    `yaml:"fetch" envconfig:"FETCH"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// AnalysisConfig contains the recognized analysis options.
type AnalysisConfig struct {
	// Number of entries in the product ranking.
	TopN int `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"min=1"`
	// Metric the ranking sorts by.
	RankMetric string `yaml:"rank_metric" envconfig:"RANK_METRIC" default:"revenue" validate:"oneof=revenue quantity orders customers"`
	// Multiplier applied to the IQR when computing the inlier bound.
	OutlierMultiplier float64 `yaml:"outlier_multiplier" envconfig:"OUTLIER_MULTIPLIER" default:"1.5" validate:"gte=0"`
}

// FetchConfig contains dataset acquisition configuration.
type FetchConfig struct {
	DatasetURL string `yaml:"dataset_url" envconfig:"DATASET_URL" default:"https://archive.ics.uci.edu/ml/machine-learning-databases/00352/Online%20Retail.xlsx" validate:"url"`
	TargetFile string `yaml:"target_file" envconfig:"TARGET_FILE" default:"online_retail.xlsx"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the analysis and fetch options against their constraints.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays non-zero file values onto the environment-derived config
func mergeConfigs(fileConfig, envConfig Config) Config {
	if fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if fileConfig.Paths.LogsDir != "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	if fileConfig.Analysis.TopN != 0 {
		envConfig.Analysis.TopN = fileConfig.Analysis.TopN
	}
	if fileConfig.Analysis.RankMetric != "" {
		envConfig.Analysis.RankMetric = fileConfig.Analysis.RankMetric
	}
	if fileConfig.Analysis.OutlierMultiplier != 0 {
		envConfig.Analysis.OutlierMultiplier = fileConfig.Analysis.OutlierMultiplier
	}
	if fileConfig.Fetch.DatasetURL != "" {
		envConfig.Fetch.DatasetURL = fileConfig.Fetch.DatasetURL
	}
	if fileConfig.Fetch.TargetFile != "" {
		envConfig.Fetch.TargetFile = fileConfig.Fetch.TargetFile
	}

	return envConfig
}

// getConfigFilePath returns the config file location, overridable via
// RETAIL_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("RETAIL_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// EnsureDirectories creates the configured directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatasetPath returns the resolved location of the raw dataset file.
func (c *Config) DatasetPath() string {
	if filepath.IsAbs(c.Fetch.TargetFile) {
		return c.Fetch.TargetFile
	}
	return filepath.Join(c.Paths.DataDir, c.Fetch.TargetFile)
}
