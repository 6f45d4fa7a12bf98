package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/armadaops/armada/internal/ios3"
	"github.com/armadaops/armada/pkg/config"
	"github.com/armadaops/armada/pkg/index"
)

// getQueryCmd returns the query command.
func getQueryCmd() *cobra.Command {
	var (
		ids        []string
		aliases    []string
		tag        string
		ou         string
		regions    []string
		allRegions bool
		all        bool
		orgRoots   bool
		objectPath string
	)

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Resolve accounts against the inventory index",
		Long: `Fetch the inventory snapshot from S3, build the in-memory account
index, and answer one account-selection query.

Exactly one selector must be given. Alias, OU and tag lookups are
case-insensitive; region codes are used verbatim. A selector with no
match prints an empty result, it is not an error.

Examples:
  # All account IDs
  armada query --all

  # Accounts by explicit IDs (unknown IDs are dropped)
  armada query --ids 000000000001,000000000002

  # Accounts by display name
  armada query --aliases "Account 1,Account 2"

  # Accounts carrying a tag
  armada query --tag Environment=prod

  # Accounts in an OU, by OU ID or display name
  armada query --ou prod

  # Accounts per region
  armada query --regions us-east-1,eu-west-1
  armada query --all-regions

  # The organization root
  armada query --org-roots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(
				cmd, ids, aliases, tag, ou, regions,
				allRegions, all, orgRoots, objectPath,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	queryCmd.Flags().StringSliceVar(&ids, "ids", nil,
		"resolve accounts by explicit IDs")
	queryCmd.Flags().StringSliceVar(&aliases, "aliases", nil,
		"resolve accounts by display names")
	queryCmd.Flags().StringVar(&tag, "tag", "",
		"resolve accounts by tag, as Name=Value")
	queryCmd.Flags().StringVar(&ou, "ou", "",
		"resolve accounts by OU ID or OU name")
	queryCmd.Flags().StringSliceVar(&regions, "regions", nil,
		"resolve accounts per region")
	queryCmd.Flags().BoolVar(&allRegions, "all-regions", false,
		"list accounts for every known region")
	queryCmd.Flags().BoolVar(&all, "all", false,
		"list every account ID")
	queryCmd.Flags().BoolVar(&orgRoots, "org-roots", false,
		"print the organization root")
	queryCmd.Flags().StringVarP(&objectPath, "object-path", "p", "",
		"override the snapshot object key")

	return queryCmd
}

func runQuery(
	cmd *cobra.Command,
	ids, aliases []string,
	tag, ou string,
	regions []string,
	allRegions, all, orgRoots bool,
	objectPath string,
) error {
	ctx := context.Background()

	selectors := 0
	for _, set := range []bool{
		len(ids) > 0 || cmd.Flags().Changed("ids"),
		len(aliases) > 0 || cmd.Flags().Changed("aliases"),
		tag != "",
		ou != "",
		len(regions) > 0 || cmd.Flags().Changed("regions"),
		allRegions,
		all,
		orgRoots,
	} {
		if set {
			selectors++
		}
	}
	if selectors != 1 {
		gn.Warn("Provide exactly one selector, see <em>armada query --help</em>")
		return fmt.Errorf("expected exactly one selector, got %d", selectors)
	}

	if cmd.Flags().Changed("object-path") {
		cfg.Update([]config.Option{config.OptSnapshotObjectPath(objectPath)})
	}

	if err := cfg.ValidateSnapshot(); err != nil {
		return err
	}

	src, err := ios3.New(ctx, cfg.Snapshot)
	if err != nil {
		return err
	}

	idx, err := index.NewManager(src).Index(ctx)
	if err != nil {
		return err
	}

	var result any
	switch {
	case cmd.Flags().Changed("ids"):
		result = idx.AccountsByIDs(ids).Slice()
	case cmd.Flags().Changed("aliases"):
		result = idx.AccountsByAliases(aliases).Slice()
	case tag != "":
		name, value, ok := strings.Cut(tag, "=")
		if !ok {
			gn.Warn("The --tag selector needs the form <em>Name=Value</em>")
			return fmt.Errorf("malformed tag selector %q", tag)
		}
		result = idx.AccountsByTag(name, value).Slice()
	case ou != "":
		result = idx.AccountsByOU(ou).Slice()
	case cmd.Flags().Changed("regions"):
		result = regionSlices(idx.AccountsByRegions(regions))
	case allRegions:
		result = regionSlices(idx.AllAccountsByRegion())
	case orgRoots:
		result = idx.OrgRoots().Slice()
	default:
		result = idx.AllAccounts().Slice()
	}

	enc := gnfmt.GNjson{Pretty: true}
	body, err := enc.Encode(result)
	if err != nil {
		return err
	}
	fmt.Println(string(body))

	return nil
}

// regionSlices converts a RegionMap into stable, JSON-friendly output.
func regionSlices(m index.RegionMap) map[string][]string {
	res := make(map[string][]string, len(m))
	for region, accounts := range m {
		res[region] = accounts.Slice()
	}
	return res
}
