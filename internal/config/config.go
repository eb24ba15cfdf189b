package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Portal  PortalConfig  `yaml:"portal"`
	History HistoryConfig `yaml:"history"`
	Batch   BatchConfig   `yaml:"batch"`
	App     AppConfig     `yaml:"app"`

	// MappingFormulir maps a cleaned report title to the Portal Sehat
	// form identifier. Exact-match lookup, supplied by the operator.
	MappingFormulir map[string]string `yaml:"mapping_formulir"`

	// DriveLinks maps a report kind to its Google Drive folder URL.
	DriveLinks map[string]string `yaml:"drive_links"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// PortalConfig holds Portal Sehat API configuration
type PortalConfig struct {
	BaseURL        string `yaml:"base_url"`
	IDAplikasi     string `yaml:"id_aplikasi"`
	IDInstitusi    string `yaml:"id_institusi"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c PortalConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HistoryConfig holds upload-history persistence configuration
type HistoryConfig struct {
	FilePath string `yaml:"file_path"`
}

// BatchConfig holds batch sequencing configuration
type BatchConfig struct {
	DelayMinSeconds int `yaml:"delay_min_seconds"`
	DelayMaxSeconds int `yaml:"delay_max_seconds"`
}

// DelayMin returns the minimum inter-item delay as a duration
func (c BatchConfig) DelayMin() time.Duration {
	return time.Duration(c.DelayMinSeconds) * time.Second
}

// DelayMax returns the maximum inter-item delay as a duration
func (c BatchConfig) DelayMax() time.Duration {
	return time.Duration(c.DelayMaxSeconds) * time.Second
}

// AppConfig holds the operator-facing application settings
type AppConfig struct {
	Password string `yaml:"password"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Portal.BaseURL == "" {
		cfg.Portal.BaseURL = "https://admin-uploadsehat.lombokbaratkab.go.id"
	}
	if cfg.Portal.TimeoutSeconds == 0 {
		cfg.Portal.TimeoutSeconds = 60
	}
	if cfg.History.FilePath == "" {
		cfg.History.FilePath = "upload_history.json"
	}
	if cfg.Batch.DelayMinSeconds == 0 {
		cfg.Batch.DelayMinSeconds = 3
	}
	if cfg.Batch.DelayMaxSeconds == 0 {
		cfg.Batch.DelayMaxSeconds = 7
	}
	if cfg.MappingFormulir == nil {
		cfg.MappingFormulir = map[string]string{}
	}
	if cfg.DriveLinks == nil {
		cfg.DriveLinks = map[string]string{}
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if baseURL := os.Getenv("PORTAL_BASE_URL"); baseURL != "" {
		cfg.Portal.BaseURL = baseURL
	}
	if idAplikasi := os.Getenv("PORTAL_ID_APLIKASI"); idAplikasi != "" {
		cfg.Portal.IDAplikasi = idAplikasi
	}
	if idInstitusi := os.Getenv("PORTAL_ID_INSTITUSI"); idInstitusi != "" {
		cfg.Portal.IDInstitusi = idInstitusi
	}
	if password := os.Getenv("APP_PASSWORD"); password != "" {
		cfg.App.Password = password
	}
	if historyFile := os.Getenv("HISTORY_FILE"); historyFile != "" {
		cfg.History.FilePath = historyFile
	}

	return cfg, nil
}
