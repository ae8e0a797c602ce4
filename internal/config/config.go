// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Engine   EngineConfig
	Database DatabaseConfig
	UI       UIConfig
}

// EngineConfig holds evaluation service settings.
type EngineConfig struct {
	URL       string
	TimeoutMS int `mapstructure:"timeout_ms"`
	Mode      string
}

// DatabaseConfig holds sqlite settings for the sheet library.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	DebugLog        string `mapstructure:"debug_log"`
}

// Timeout returns the engine request deadline. A hung engine degrades into a
// transport failure rather than a stuck sheet.
func (e EngineConfig) Timeout() time.Duration {
	if e.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(e.TimeoutMS) * time.Millisecond
}

// Load reads configuration from file and env. Env var overrides use prefix MATHSHEET_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("engine.url", "http://127.0.0.1:8940")
	v.SetDefault("engine.timeout_ms", 5000)
	v.SetDefault("engine.mode", "float")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "mathsheet", "library.db"))
	v.SetDefault("ui.show_line_numbers", true)
	v.SetDefault("ui.debug_log", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MATHSHEET_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "mathsheet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MATHSHEET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
