package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	LogLevel              string        `mapstructure:"log_level"`
	APIBaseURL            string        `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	FBToken      string `mapstructure:"fb_token"`

	Device Device `mapstructure:",squash"`
}

// Device holds the handset fields sent when registering a device.
type Device struct {
	DeviceID   string `mapstructure:"device_id"`
	AppBuild   string `mapstructure:"app_build"`
	CountryID  string `mapstructure:"country_id"`
	GPSAdID    string `mapstructure:"gps_adid"`
	IDFA       string `mapstructure:"idfa"`
	OSVersion  string `mapstructure:"os_version"`
	GPSToken   string `mapstructure:"gps_token"`
	Type       string `mapstructure:"type"`
	LanguageID string `mapstructure:"language_id"`
}

// keys lists every key so AutomaticEnv can see values that have no default.
var keys = []string{
	"client_id", "client_secret", "fb_token",
	"device_id", "app_build", "country_id", "gps_adid", "idfa", "os_version", "gps_token", "type",
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "happnctl")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "https://api.happn.fr")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("language_id", "en")
	for _, k := range keys {
		v.SetDefault(k, "")
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must not be empty")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	c.ClientSecret = redact(c.ClientSecret)
	c.FBToken = redact(c.FBToken)
	c.Device.GPSToken = redact(c.Device.GPSToken)
	return c
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}
