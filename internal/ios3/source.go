// Package ios3 implements the snapshot source over S3: it fetches the
// generated account inventory object and decodes it into a Snapshot
// for the index builder.
package ios3

import (
	"context"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/armadaops/armada/pkg/config"
	"github.com/armadaops/armada/pkg/index"
	"github.com/armadaops/armada/pkg/inventory"
)

// ObjectGetter is the slice of the S3 API the source needs. Tests
// inject a fake; production uses *s3.Client.
type ObjectGetter interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// source implements index.SnapshotSource.
type source struct {
	client ObjectGetter
	cfg    config.SnapshotConfig
}

// New creates a SnapshotSource for the configured bucket, region and
// object path.
func New(ctx context.Context, cfg config.SnapshotConfig) (index.SnapshotSource, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx, awsconfig.WithRegion(cfg.BucketRegion),
	)
	if err != nil {
		return nil, FetchError(cfg.Bucket, cfg.ObjectPath, err)
	}

	return &source{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a SnapshotSource with a caller-supplied S3
// client.
func NewWithClient(client ObjectGetter, cfg config.SnapshotConfig) index.SnapshotSource {
	return &source{client: client, cfg: cfg}
}

// Fetch downloads and decodes the inventory object.
func (s *source) Fetch(ctx context.Context) (*inventory.Snapshot, error) {
	slog.Debug("Fetching the account inventory",
		"bucket", s.cfg.Bucket,
		"region", s.cfg.BucketRegion,
		"path", s.cfg.ObjectPath,
	)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.cfg.ObjectPath),
	})
	if err != nil {
		return nil, FetchError(s.cfg.Bucket, s.cfg.ObjectPath, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, FetchError(s.cfg.Bucket, s.cfg.ObjectPath, err)
	}

	snap, err := inventory.Decode(data)
	if err != nil {
		return nil, err
	}

	slog.Debug("Account inventory loaded",
		"accounts", len(snap.Accounts),
		"generated", snap.Generated,
	)

	return snap, nil
}
