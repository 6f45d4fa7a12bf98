package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/armadaops/armada/pkg/config"
	"gopkg.in/yaml.v3"
)

// ConfigDir returns the configuration directory for Armada:
// ~/.config/armada on Unix-like systems, %APPDATA%\armada on Windows.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	var configDir string
	if filepath.Separator == '/' {
		configDir = filepath.Join(homeDir, ".config", "armada")
	} else {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(homeDir, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "armada")
	}

	return configDir, nil
}

// DefaultConfigPath returns the full path to the default config file.
func DefaultConfigPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "armada.yaml"), nil
}

// ConfigFileExists reports whether the default config file is present.
func ConfigFileExists() (bool, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// GenerateDefaultConfig creates a documented default config file at the
// default location. Returns the path where the config was created.
// Does NOT overwrite existing config files.
func GenerateDefaultConfig() (string, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaults := config.New()
	body, err := yaml.Marshal(defaults)
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := `# Armada Configuration File
# This file was auto-generated. Edit as needed.
#
# Configuration precedence (highest to lowest):
#   1. CLI flags
#   2. Environment variables (ARMADA_*)
#   3. This config file
#   4. Built-in defaults
#
# snapshot: where the generated account inventory lives in S3.
# generator: settings for 'armada generate'; the org_* fields point at
#   the AWS Organizations management account.

`

	content := append([]byte(header), body...)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
