// Package config builds the single configuration value the rest of the
// tool consumes. Sources, in increasing precedence: defaults, the
// config file, a local .env file, process environment, command flags
// (applied by the cmd layer).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultModel    = "gemini-2.0-flash-lite"
	DefaultLanguage = "en"

	configName = ".aicommit"
)

// AllowedModels is the fixed set of Gemini models the tool will talk
// to. Anything else is rejected before a request is dispatched.
var AllowedModels = []string{
	"gemini-2.0-flash-lite",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
}

// Languages the commit-message prompt can be asked for.
var SupportedLanguages = []string{"en", "pt"}

type Config struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Language       string `mapstructure:"language"`
	CommitTemplate string `mapstructure:"commit_template"`
}

// Load reads the configuration once at process start. A missing config
// file and a missing .env file are both fine; a malformed config file
// is not. The API key is deliberately not validated here so that
// `aicommit config` works without one.
func Load(cfgFile string) (*Config, error) {
	// A .env in the working directory may carry GEMINI_API_KEY.
	_ = godotenv.Load()

	v, err := open(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	return cfg, nil
}

// Set persists a single key into the config file, creating the file
// when it does not exist yet. Only file-backed settings are written;
// the env-bound API key never ends up on disk this way.
func Set(cfgFile, key, value string) error {
	v := viper.New()
	path := cfgFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	v.Set(key, value)
	return v.WriteConfigAs(path)
}

func open(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to locate home directory: %w", err)
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	v.SetDefault("model", DefaultModel)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("api_key", "")
	v.SetDefault("commit_template", "")

	if err := v.BindEnv("api_key", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine either way: viper reports it as
		// ConfigFileNotFoundError when searching, but as a bare
		// fs.ErrNotExist when an explicit path was given.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}
	return v, nil
}

// Validate checks the fields the generation pipeline depends on.
func (c *Config) Validate() error {
	if !IsAllowedModel(c.Model) {
		return fmt.Errorf("model %q is not supported; choose one of: %s",
			c.Model, strings.Join(AllowedModels, ", "))
	}
	return nil
}

// IsAllowedModel reports whether model belongs to the fixed allow-list.
func IsAllowedModel(model string) bool {
	return slices.Contains(AllowedModels, model)
}

// IsSupportedLanguage reports whether the language code is one the
// prompt layer has a locale name for.
func IsSupportedLanguage(lang string) bool {
	return slices.Contains(SupportedLanguages, strings.ToLower(lang))
}

// DefaultPath returns the config file path used when --config is not
// given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to locate home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}
