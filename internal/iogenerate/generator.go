// Package iogenerate implements the account inventory generator: it
// walks the AWS Organizations API, enriches each account with its
// tags, parent OUs and enabled regions, and writes the resulting
// snapshot document to S3.
package iogenerate

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"

	"github.com/armadaops/armada/pkg/config"
	"github.com/armadaops/armada/pkg/inventory"
)

// Generator produces the account inventory snapshot.
type Generator struct {
	cfg          *config.Config
	org          OrganizationsAPI
	uploader     ObjectPutter
	regions      RegionsClientFactory
	showProgress bool
}

// New creates a Generator with real AWS clients built from the
// configuration.
func New(ctx context.Context, cfg *config.Config) (*Generator, error) {
	org, err := newOrgClient(ctx, cfg.Generator)
	if err != nil {
		return nil, err
	}

	regions, err := newRegionsFactory(ctx, cfg.Generator)
	if err != nil {
		return nil, err
	}

	uploader, err := newInventoryUploader(ctx, cfg.Generator)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:          cfg,
		org:          org,
		uploader:     uploader,
		regions:      regions,
		showProgress: true,
	}, nil
}

// NewWithClients creates a Generator with caller-supplied clients.
func NewWithClients(
	cfg *config.Config,
	org OrganizationsAPI,
	uploader ObjectPutter,
	regions RegionsClientFactory,
) *Generator {
	return &Generator{
		cfg:      cfg,
		org:      org,
		uploader: uploader,
		regions:  regions,
	}
}

// Generate builds the full inventory snapshot. When commit is true the
// snapshot is uploaded to the inventory bucket; otherwise it is only
// returned, so a dry run can inspect it.
func (g *Generator) Generate(ctx context.Context, commit bool) (*inventory.Snapshot, error) {
	start := time.Now()

	slog.Info("Listing accounts from the Organizations API",
		"org_account", g.cfg.Generator.OrgAccountID)
	accounts, err := g.listAccounts(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Accounts listed",
		"count", humanize.Comma(int64(len(accounts))))

	slog.Info("Listing organizational units",
		"org_root", g.cfg.Generator.OrgRootID)
	ouNames, err := g.listOrgUnits(ctx, g.cfg.Generator.OrgRootID)
	if err != nil {
		return nil, err
	}
	slog.Info("Organizational units listed",
		"count", humanize.Comma(int64(len(ouNames))))

	slog.Info("Fetching tags, parents and enabled regions per account",
		"workers", g.cfg.JobsNumber)
	if err := g.fetchDetails(ctx, accounts, ouNames); err != nil {
		return nil, err
	}

	snap := &inventory.Snapshot{
		Generated: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Accounts:  accounts,
	}

	if commit {
		if err := g.upload(ctx, snap); err != nil {
			return nil, err
		}
		gn.Info("Inventory saved to <em>s3://%s/%s</em>",
			g.cfg.Generator.InventoryBucket, g.cfg.Generator.ObjectPath)
	}

	slog.Info("Inventory generated",
		"accounts", humanize.Comma(int64(len(accounts))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)

	return snap, nil
}

// upload writes the snapshot envelope as pretty JSON to the inventory
// bucket.
func (g *Generator) upload(ctx context.Context, snap *inventory.Snapshot) error {
	enc := gnfmt.GNjson{Pretty: true}
	body, err := enc.Encode(snap)
	if err != nil {
		return PutInventoryError(
			g.cfg.Generator.InventoryBucket, g.cfg.Generator.ObjectPath, err)
	}

	_, err = g.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.cfg.Generator.InventoryBucket),
		Key:         aws.String(g.cfg.Generator.ObjectPath),
		ACL:         s3types.ObjectCannedACLBucketOwnerFullControl,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return PutInventoryError(
			g.cfg.Generator.InventoryBucket, g.cfg.Generator.ObjectPath, err)
	}

	return nil
}
