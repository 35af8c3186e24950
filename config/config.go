package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the proxy.
type Config struct {
	General  GeneralConfig  `mapstructure:"general"`
	Crelate  CrelateConfig  `mapstructure:"crelate"`
	Contacts ContactsConfig `mapstructure:"contacts"`
}

// GeneralConfig contains server-level settings.
type GeneralConfig struct {
	Listen    string `mapstructure:"listen"`
	Debug     bool   `mapstructure:"debug"`
	WellKnown string `mapstructure:"well_known_dir"`
}

// CrelateConfig contains upstream API settings.
type CrelateConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ContactsConfig points at the local contact snapshot consulted when
// upstream yields nothing.
type ContactsConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// Validate checks the upstream settings a running proxy cannot do
// without.
func (c CrelateConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("crelate.api_key required (or CRMBRIDGE_CRELATE_API_KEY)")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("crelate.base_url required")
	}
	return nil
}

// LoadConfig reads configuration from a file plus CRMBRIDGE_* env
// overrides. With an empty path the usual locations are searched; a
// missing file is fine (env-only operation), a malformed one is fatal.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("json")
	viper.SetDefault("general.listen", ":8000")
	viper.SetDefault("general.well_known_dir", ".well-known")
	// an empty default registers the key so the env override binds
	viper.SetDefault("crelate.api_key", "")
	viper.SetDefault("crelate.base_url", "https://app.crelate.com/api3")
	viper.SetDefault("crelate.timeout", 30*time.Second)
	viper.SetDefault("contacts.snapshot_path", "API Contacts.xlsx")

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("CRMBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match (CRMBRIDGE_*)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
	if err := config.Crelate.Validate(); err != nil {
		panic(err)
	}
	return &config
}
