// Package config provides configuration management for Armada.
//
// This package has no I/O dependencies (no file operations, no network
// calls). File and environment loading live in internal/ioconfig.
//
// Configuration precedence (highest to lowest):
// CLI flags > env vars (ARMADA_*) > armada.yaml > defaults.
//
// The default config from New() is always valid for commands that take
// no AWS resources; commands validate the section they need
// (ValidateSnapshot, ValidateGenerator) before touching the network.
package config

import (
	"runtime"

	"github.com/go-playground/validator/v10"
)

// DefaultObjectPath is the well-known key of the inventory object when
// the configuration does not override it.
const DefaultObjectPath = "accountIndex.json"

// Config represents the complete Armada configuration.
type Config struct {
	// Snapshot locates the generated inventory object that the index
	// builder consumes.
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`

	// Generator holds the settings for producing the inventory from
	// the AWS Organizations API.
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used while
	// fetching per-account details during generation.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`
}

// SnapshotConfig locates the account inventory snapshot in S3.
type SnapshotConfig struct {
	// Bucket is the S3 bucket holding the inventory object.
	Bucket string `mapstructure:"bucket" yaml:"bucket" validate:"required"`

	// BucketRegion is the region of the inventory bucket.
	BucketRegion string `mapstructure:"bucket_region" yaml:"bucket_region" validate:"required"`

	// ObjectPath is the key of the inventory object inside the bucket.
	ObjectPath string `mapstructure:"object_path" yaml:"object_path" validate:"required"`
}

// GeneratorConfig holds settings for the inventory generator.
type GeneratorConfig struct {
	// OrgAccountID is the AWS Organizations management account.
	OrgAccountID string `mapstructure:"org_account_id" yaml:"org_account_id" validate:"required,numeric,len=12"`

	// OrgAccountRole is the role assumed in the management account to
	// query the Organizations API.
	OrgAccountRole string `mapstructure:"org_account_role" yaml:"org_account_role" validate:"required"`

	// OrgRootID is the organization root, needed to walk all OUs.
	// Find it in the AWS Organizations console; starts with 'r-'.
	OrgRootID string `mapstructure:"org_root_id" yaml:"org_root_id" validate:"required,startswith=r-"`

	// DescribeRegionsRole is the role assumed in each member account
	// to list its enabled regions.
	DescribeRegionsRole string `mapstructure:"describe_regions_role" yaml:"describe_regions_role" validate:"required"`

	// InventoryBucket is the S3 bucket the generated inventory is
	// written to.
	InventoryBucket string `mapstructure:"inventory_bucket" yaml:"inventory_bucket" validate:"required"`

	// InventoryBucketRegion is the region of the inventory bucket.
	InventoryBucketRegion string `mapstructure:"inventory_bucket_region" yaml:"inventory_bucket_region" validate:"required"`

	// ObjectPath is the key the inventory object is written under.
	ObjectPath string `mapstructure:"object_path" yaml:"object_path" validate:"required"`

	// DeploymentRegion is the region AWS clients are constructed in.
	DeploymentRegion string `mapstructure:"deployment_region" yaml:"deployment_region" validate:"required"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

var validate = validator.New()

// New creates a Config with sensible default values. Default values
// can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Snapshot: SnapshotConfig{
			ObjectPath: DefaultObjectPath,
		},
		Generator: GeneratorConfig{
			ObjectPath:       DefaultObjectPath,
			DeploymentRegion: "us-east-1",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// Update applies options to the config in order.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ValidateSnapshot checks the fields needed to locate the inventory
// snapshot.
func (c *Config) ValidateSnapshot() error {
	if c.Snapshot.Bucket == "" && c.Snapshot.BucketRegion == "" {
		return MissingConfigError("snapshot")
	}
	if err := validate.Struct(c.Snapshot); err != nil {
		return InvalidConfigError("snapshot", err)
	}
	return nil
}

// ValidateGenerator checks the fields needed to generate the
// inventory.
func (c *Config) ValidateGenerator() error {
	if c.Generator.OrgAccountID == "" && c.Generator.OrgAccountRole == "" {
		return MissingConfigError("generator")
	}
	if err := validate.Struct(c.Generator); err != nil {
		return InvalidConfigError("generator", err)
	}
	return nil
}
