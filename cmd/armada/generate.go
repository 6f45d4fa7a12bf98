package main

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/armadaops/armada/internal/iogenerate"
	"github.com/armadaops/armada/pkg/config"
)

// getGenerateCmd returns the generate command.
func getGenerateCmd() *cobra.Command {
	var (
		commit     bool
		objectPath string
		jobs       int
	)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the account inventory and save it to S3",
		Long: `Walk the AWS Organizations API and build the account inventory
snapshot.

This command:
  1. Lists every account of the organization
  2. Lists all organizational units under the configured root
  3. Fetches tags, parent OUs and enabled regions per account
  4. Saves the snapshot to the inventory bucket (with --commit)

Without --commit the snapshot is printed to stdout instead of being
uploaded.

Examples:
  # Dry run, print the inventory
  armada generate

  # Generate and upload
  armada generate --commit

  # Upload under a different key with more workers
  armada generate --commit --object-path staging/accountIndex.json --jobs 32`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGenerate(cmd, commit, objectPath, jobs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	generateCmd.Flags().BoolVarP(
		&commit, "commit", "c", false,
		"save the generated inventory to S3",
	)
	generateCmd.Flags().StringVarP(
		&objectPath, "object-path", "p", "",
		"override the inventory object key",
	)
	generateCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0,
		"number of concurrent detail-fetching workers",
	)

	return generateCmd
}

func runGenerate(
	cmd *cobra.Command,
	commit bool,
	objectPath string,
	jobs int,
) error {
	ctx := context.Background()

	var opts []config.Option
	if cmd.Flags().Changed("object-path") {
		opts = append(opts, config.OptGeneratorObjectPath(objectPath))
	}
	if cmd.Flags().Changed("jobs") {
		opts = append(opts, config.OptJobsNumber(jobs))
	}
	if len(opts) > 0 {
		cfg.Update(opts)
	}

	if err := cfg.ValidateGenerator(); err != nil {
		return err
	}

	if !commit {
		gn.Warn("Commit flag is disabled: not saving the inventory to S3")
	}

	gen, err := iogenerate.New(ctx, cfg)
	if err != nil {
		return err
	}

	snap, err := gen.Generate(ctx, commit)
	if err != nil {
		return err
	}

	if !commit {
		enc := gnfmt.GNjson{Pretty: true}
		body, err := enc.Encode(snap)
		if err != nil {
			return err
		}
		fmt.Println(string(body))
	}

	gn.Info("Done!")
	return nil
}
