package iologger

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError creates an error for a log file that cannot be
// opened for writing.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot create the log file

<em>Path:</em> %s

Check that the directory exists and is writable, or switch
log.destination to 'stderr'.`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create log file %q: %w", path, err),
	}
}
