package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSnapshotBucket sets the S3 bucket holding the inventory object.
func OptSnapshotBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Snapshot Bucket", s) {
			c.Snapshot.Bucket = s
		}
	}
}

// OptSnapshotBucketRegion sets the region of the inventory bucket.
func OptSnapshotBucketRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Snapshot Bucket Region", s) {
			c.Snapshot.BucketRegion = s
		}
	}
}

// OptSnapshotObjectPath sets the key of the inventory object.
func OptSnapshotObjectPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Snapshot Object Path", s) {
			c.Snapshot.ObjectPath = s
		}
	}
}

// OptGeneratorOrgAccountID sets the Organizations management account.
func OptGeneratorOrgAccountID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Org Account ID", s) {
			c.Generator.OrgAccountID = s
		}
	}
}

// OptGeneratorOrgAccountRole sets the role assumed to query the
// Organizations API.
func OptGeneratorOrgAccountRole(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Org Account Role", s) {
			c.Generator.OrgAccountRole = s
		}
	}
}

// OptGeneratorOrgRootID sets the organization root ID (r-...).
func OptGeneratorOrgRootID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Org Root ID", s) {
			c.Generator.OrgRootID = s
		}
	}
}

// OptGeneratorDescribeRegionsRole sets the per-account role used to
// list enabled regions.
func OptGeneratorDescribeRegionsRole(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Describe Regions Role", s) {
			c.Generator.DescribeRegionsRole = s
		}
	}
}

// OptGeneratorInventoryBucket sets the bucket the inventory is written
// to.
func OptGeneratorInventoryBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Inventory Bucket", s) {
			c.Generator.InventoryBucket = s
		}
	}
}

// OptGeneratorInventoryBucketRegion sets the inventory bucket region.
func OptGeneratorInventoryBucketRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Inventory Bucket Region", s) {
			c.Generator.InventoryBucketRegion = s
		}
	}
}

// OptGeneratorObjectPath sets the key the inventory is written under.
func OptGeneratorObjectPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Generator Object Path", s) {
			c.Generator.ObjectPath = s
		}
	}
}

// OptGeneratorDeploymentRegion sets the region AWS clients are
// constructed in.
func OptGeneratorDeploymentRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Deployment Region", s) {
			c.Generator.DeploymentRegion = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s, "debug", "info", "warn", "error") {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s, "json", "text") {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s, "file", "stderr", "stdout") {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the worker count for detail fetching.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if i <= 0 {
			gn.Warn("Ignoring invalid Jobs Number: <em>%d</em>", i)
			return
		}
		c.JobsNumber = i
	}
}

func isValidString(field, s string) bool {
	if s == "" {
		gn.Warn("Ignoring empty value for <em>%s</em>", field)
		return false
	}
	return true
}

func isValidEnum(field, s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	gn.Warn("Ignoring invalid value <em>%s</em> for <em>%s</em>", s, field)
	return false
}
