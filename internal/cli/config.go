package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config carries everything needed to reach the IcePanel API and the
// optional external converter.
type Config struct {
	APIKey      string `toml:"api_key"`
	LandscapeID string `toml:"landscape_id"`
	VersionID   string `toml:"landscape_version"`
	BaseURL     string `toml:"base_url"`
	MMDCCommand string `toml:"mmdc_command"`
}

const defaultBaseURL = "https://api.icepanel.io/v1"

// LoadConfig resolves configuration in ascending precedence: built-in
// defaults, the TOML config file, a .env file in the working directory,
// then process environment variables. Flag values are applied on top by
// the individual commands.
//
// An explicitly passed config path must exist; the default path
// (~/.config/icepanel-diagrams/config.toml) is optional.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		BaseURL:     defaultBaseURL,
		MMDCCommand: "mmdc",
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	// Missing .env is the normal case.
	_ = godotenv.Load()

	for env, dst := range map[string]*string{
		"API_KEY":           &cfg.APIKey,
		"LANDSCAPE_ID":      &cfg.LandscapeID,
		"LANDSCAPE_VERSION": &cfg.VersionID,
		"ICEPANEL_API_URL":  &cfg.BaseURL,
		"MMDC_CMD":          &cfg.MMDCCommand,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	return cfg, nil
}

// Validate reports the first missing required field.
func (c Config) Validate() error {
	switch {
	case c.APIKey == "":
		return errors.New("missing API key (set API_KEY or api_key in the config file)")
	case c.LandscapeID == "":
		return errors.New("missing landscape id (set LANDSCAPE_ID or landscape_id in the config file)")
	case c.VersionID == "":
		return errors.New("missing landscape version (set LANDSCAPE_VERSION or landscape_version in the config file)")
	}
	return nil
}

// defaultConfigPath returns the XDG-style config location, or "" when no
// home directory can be determined.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
