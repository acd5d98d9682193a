package draftly

import (
	"time"
)

// Config consolidates settings for the service.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Render   RenderConfig   `json:"render"`
	Archive  ArchiveConfig  `json:"archive"`
	Logging  LoggingConfig  `json:"logging"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Database        string        `json:"database"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"sslMode"`
	UseIAMAuth      bool          `json:"useIamAuth"`
	MaxConnections  int           `json:"maxConnections"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `json:"connMaxIdleTime"`
	Timeout         time.Duration `json:"timeout"`
	TableNames      TableNames    `json:"tableNames"`
}

// TableNames configures the two persisted tables.
type TableNames struct {
	Templates string `json:"templates"`
	Contracts string `json:"contracts"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// RenderConfig configures the external HTML-to-PDF rasterizer.
type RenderConfig struct {
	// DebuggerURL attaches to an already-running browser instead of
	// launching one.
	DebuggerURL string        `json:"debuggerUrl"`
	BrowserBin  string        `json:"browserBin"`
	Headless    bool          `json:"headless"`
	Timeout     time.Duration `json:"timeout"`
}

// ArchiveConfig configures optional S3 archiving of exported documents.
// Archiving is disabled unless a bucket is set.
type ArchiveConfig struct {
	Bucket        string        `json:"bucket"`
	Region        string        `json:"region"`
	Endpoint      string        `json:"endpoint"`
	KeyPrefix     string        `json:"keyPrefix"`
	UploadTimeout time.Duration `json:"uploadTimeout"`
}

// Enabled reports whether exports should be archived.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "draftly",
			Username:        "postgres",
			SSLMode:         "disable",
			MaxConnections:  25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 1 * time.Hour,
			ConnMaxIdleTime: 5 * time.Minute,
			Timeout:         30 * time.Second,
			TableNames: TableNames{
				Templates: "templates",
				Contracts: "contracts",
			},
		},
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			Headless: true,
			Timeout:  30 * time.Second,
		},
		Archive: ArchiveConfig{
			UploadTimeout: 20 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.MaxConnections <= 0 {
		return &ConfigError{Field: "database.maxConnections", Message: "must be greater than 0"}
	}
	if c.Database.TableNames.Templates == "" {
		return &ConfigError{Field: "database.tableNames.templates", Message: "must not be empty"}
	}
	if c.Database.TableNames.Contracts == "" {
		return &ConfigError{Field: "database.tableNames.contracts", Message: "must not be empty"}
	}
	if c.Server.Port == "" {
		return &ConfigError{Field: "server.port", Message: "must not be empty"}
	}
	if c.Render.Timeout <= 0 {
		return &ConfigError{Field: "render.timeout", Message: "must be greater than 0"}
	}
	if c.Archive.Enabled() && c.Archive.UploadTimeout <= 0 {
		return &ConfigError{Field: "archive.uploadTimeout", Message: "must be greater than 0 when archiving is enabled"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}
