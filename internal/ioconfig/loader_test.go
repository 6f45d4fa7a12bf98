package ioconfig

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armadaops/armada/pkg/config"
	"github.com/armadaops/armada/pkg/errcode"
)

func TestConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME-based config dir test is not valid on windows")
	}

	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configDir, err := ConfigDir()
	require.NoError(t, err)

	expectedDir := filepath.Join(tempHome, ".config", "armada")
	assert.Equal(t, expectedDir, configDir)
}

func TestDefaultConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME-based config dir test is not valid on windows")
	}

	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath, err := DefaultConfigPath()
	require.NoError(t, err)

	expectedPath := filepath.Join(tempHome, ".config", "armada", "armada.yaml")
	assert.Equal(t, expectedPath, configPath)
	assert.True(t, filepath.IsAbs(configPath))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultObjectPath, cfg.Snapshot.ObjectPath)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestLoadExplicitFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "armada.yaml")

	body := `snapshot:
  bucket: org-inventory
  bucket_region: eu-west-1
generator:
  org_account_id: "000000000020"
  org_root_id: r-abcd
log:
  level: debug
jobs_number: 4
`
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "org-inventory", cfg.Snapshot.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Snapshot.BucketRegion)
	assert.Equal(t, "000000000020", cfg.Generator.OrgAccountID)
	assert.Equal(t, "r-abcd", cfg.Generator.OrgRootID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.JobsNumber)

	// Fields the file does not mention keep their defaults.
	assert.Equal(t, config.DefaultObjectPath, cfg.Snapshot.ObjectPath)
	assert.Equal(t, "us-east-1", cfg.Generator.DeploymentRegion)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "armada.yaml")

	body := `snapshot:
  bucket: from-file
  bucket_region: us-east-1
`
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0644))

	t.Setenv("ARMADA_SNAPSHOT_BUCKET", "from-env")
	t.Setenv("ARMADA_LOG_LEVEL", "warn")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Snapshot.Bucket)
	assert.Equal(t, "us-east-1", cfg.Snapshot.BucketRegion)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadBadFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "armada.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{{not yaml"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadBadFileInDefaultLocation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME-based config dir test is not valid on windows")
	}

	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	configDir := filepath.Join(tempHome, ".config", "armada")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	configPath := filepath.Join(configDir, "armada.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{{not yaml"), 0644))

	// A malformed file found through the search path is just as fatal
	// as one given explicitly; env overrides must not mask it.
	t.Setenv("ARMADA_SNAPSHOT_BUCKET", "from-env")

	cfg, err := Load("")
	assert.Nil(t, cfg)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestGenerateDefaultConfig(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME-based config dir test is not valid on windows")
	}

	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	t.Run("creates documented config file", func(t *testing.T) {
		configPath, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "# Armada Configuration File"))

		// The generated file must round-trip through the loader.
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultObjectPath, cfg.Snapshot.ObjectPath)
	})

	t.Run("does not overwrite existing file", func(t *testing.T) {
		configPath, err := DefaultConfigPath()
		require.NoError(t, err)

		existing := "existing config"
		require.NoError(t, os.WriteFile(configPath, []byte(existing), 0644))

		_, err = GenerateDefaultConfig()
		assert.Error(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, existing, string(content))
	})
}
