package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentx-labs/skillkit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyDistDir         = "dist_dir"
	KeyInstructionsDir = "instructions_dir"
	KeyAgentsDir       = "agents_dir"
	KeyHome            = "home"
)

// Keys lists the keys accepted by Set.
var Keys = []string{KeyDistDir, KeyInstructionsDir, KeyAgentsDir}

// Dir returns the path to the config directory (~/.skillkit/). SKILLKIT_HOME
// overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar(KeyHome)); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skillkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Resolve returns flagValue when set, else the configured value for key,
// else fallback.
func Resolve(flagValue, key, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := Get(key); v != "" {
		return v
	}
	return fallback
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
