package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Backend       BackendConfig
	Meeting       MeetingConfig
	Session       SessionConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// BackendConfig describes the external mentorship REST API
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type MeetingConfig struct {
	// URLTemplate must contain the {room} placeholder
	URLTemplate string
}

// SessionConfig controls browser-side state: the bearer token cookie written by the
// login flow and the workspace cookie that keys the in-memory view cache.
type SessionConfig struct {
	TokenCookie      string
	WorkspaceCookie  string
	WorkspaceTTLMins int
	CookieDomain     string
	CookieSecure     bool
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:8080")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	v.SetDefault("MEETING_URL_TEMPLATE", "https://meet.jit.si/{room}")
	v.SetDefault("AUTH_TOKEN_COOKIE", "auth_token")
	v.SetDefault("WORKSPACE_COOKIE", "portal_ws")
	v.SetDefault("WORKSPACE_TTL_MINUTES", 30)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "mentorship-portal")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mentorship")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mentorship-portal")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/"),
			TimeoutSeconds: v.GetInt("BACKEND_TIMEOUT_SECONDS"),
		},
		Meeting: MeetingConfig{
			URLTemplate: v.GetString("MEETING_URL_TEMPLATE"),
		},
		Session: SessionConfig{
			TokenCookie:      v.GetString("AUTH_TOKEN_COOKIE"),
			WorkspaceCookie:  v.GetString("WORKSPACE_COOKIE"),
			WorkspaceTTLMins: v.GetInt("WORKSPACE_TTL_MINUTES"),
			CookieDomain:     v.GetString("COOKIE_DOMAIN"),
			CookieSecure:     v.GetBool("COOKIE_SECURE"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be an absolute URL")
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be positive")
	}

	if !strings.Contains(c.Meeting.URLTemplate, "{room}") {
		return fmt.Errorf("MEETING_URL_TEMPLATE must contain the {room} placeholder")
	}

	if c.Session.TokenCookie == "" || c.Session.WorkspaceCookie == "" {
		return fmt.Errorf("AUTH_TOKEN_COOKIE and WORKSPACE_COOKIE are required")
	}
	if c.Session.WorkspaceTTLMins <= 0 {
		return fmt.Errorf("WORKSPACE_TTL_MINUTES must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
