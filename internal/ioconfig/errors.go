package ioconfig

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadConfigError creates an error for a config file that cannot be
// read or parsed.
func ReadConfigError(path string, err error) error {
	msg := `Cannot read the configuration file

<em>Path:</em> %s

<em>Possible causes:</em>
  - The file is not valid YAML
  - Permission denied

<em>How to fix:</em>
  1. Check the YAML syntax
  2. Delete the file to regenerate a documented default`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read config file %q: %w", path, err),
	}
}
