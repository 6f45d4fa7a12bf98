package config

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingConfigError creates an error for a configuration section that
// is absent entirely.
func MissingConfigError(section string) error {
	msg := `Missing the <em>%s</em> configuration section

<em>How to fix:</em>
  1. Add the section to armada.yaml
  2. Or set the matching ARMADA_* environment variables`

	vars := []any{section}

	return &gn.Error{
		Code: errcode.ConfigMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing %q configuration", section),
	}
}

// InvalidConfigError creates an error for a configuration section that
// fails schema validation.
func InvalidConfigError(section string, err error) error {
	msg := `Invalid <em>%s</em> configuration

<em>Details:</em> %v

Check the field names and values against the comments in the
generated armada.yaml.`

	vars := []any{section, err}

	return &gn.Error{
		Code: errcode.ConfigInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid %q configuration: %w", section, err),
	}
}
