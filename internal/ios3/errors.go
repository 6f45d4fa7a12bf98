package ios3

import (
	"fmt"

	"github.com/armadaops/armada/pkg/errcode"
	"github.com/gnames/gn"
)

// FetchError creates an error for an inventory object that cannot be
// retrieved from S3.
func FetchError(bucket, path string, err error) error {
	msg := `Cannot fetch the account inventory from S3

<em>Bucket:</em> %s
<em>Object path:</em> %s

<em>Possible causes:</em>
  - The object was never generated ('armada generate --commit')
  - The configured bucket or path is wrong
  - The caller lacks s3:GetObject on the bucket

<em>How to fix:</em>
  1. Verify the snapshot section of the configuration
  2. Check the AWS credentials in the environment`

	vars := []any{bucket, path}

	return &gn.Error{
		Code: errcode.SnapshotFetchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot fetch inventory from s3://%s/%s: %w", bucket, path, err),
	}
}
