// Package ioconfig provides I/O operations for loading configuration
// from files and the environment. This is an impure package that
// handles file system access; the pure configuration model lives in
// pkg/config.
package ioconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/armadaops/armada/pkg/config"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and merges it over the
// built-in defaults. If configPath is empty, default locations are
// searched:
//   - ./armada.yaml
//   - ~/.config/armada/armada.yaml
//
// Environment variables with the ARMADA_ prefix override file values.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("armada")
		v.AddConfigPath(".")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "armada"))
		}
	}

	initEnvVars(v)

	cfg := config.New()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file: defaults plus env overrides.
			if err := v.Unmarshal(cfg); err != nil {
				return nil, ReadConfigError(configPath, err)
			}
			return cfg, nil
		}
		// A config file was found but cannot be read or parsed; this
		// is fatal regardless of how the file was located.
		return nil, ReadConfigError(v.ConfigFileUsed(), err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, ReadConfigError(v.ConfigFileUsed(), err)
	}

	return cfg, nil
}

// initEnvVars binds the environment variables we allow. They are bound
// manually so the list of recognized variables stays explicit.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("ARMADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Snapshot location
	v.BindEnv("snapshot.bucket", "ARMADA_SNAPSHOT_BUCKET")
	v.BindEnv("snapshot.bucket_region", "ARMADA_SNAPSHOT_BUCKET_REGION")
	v.BindEnv("snapshot.object_path", "ARMADA_SNAPSHOT_OBJECT_PATH")

	// Generator configuration
	v.BindEnv("generator.org_account_id", "ARMADA_GENERATOR_ORG_ACCOUNT_ID")
	v.BindEnv("generator.org_account_role", "ARMADA_GENERATOR_ORG_ACCOUNT_ROLE")
	v.BindEnv("generator.org_root_id", "ARMADA_GENERATOR_ORG_ROOT_ID")
	v.BindEnv("generator.describe_regions_role", "ARMADA_GENERATOR_DESCRIBE_REGIONS_ROLE")
	v.BindEnv("generator.inventory_bucket", "ARMADA_GENERATOR_INVENTORY_BUCKET")
	v.BindEnv("generator.inventory_bucket_region", "ARMADA_GENERATOR_INVENTORY_BUCKET_REGION")
	v.BindEnv("generator.object_path", "ARMADA_GENERATOR_OBJECT_PATH")
	v.BindEnv("generator.deployment_region", "ARMADA_GENERATOR_DEPLOYMENT_REGION")

	// Log configuration
	v.BindEnv("log.level", "ARMADA_LOG_LEVEL")
	v.BindEnv("log.format", "ARMADA_LOG_FORMAT")
	v.BindEnv("log.destination", "ARMADA_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "ARMADA_JOBS_NUMBER")

	v.AutomaticEnv()
}
