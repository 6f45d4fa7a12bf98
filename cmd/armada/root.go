package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/armadaops/armada/internal/ioconfig"
	"github.com/armadaops/armada/internal/iologger"
	"github.com/armadaops/armada/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "armada",
		Short: "Armada manages a multi-account AWS inventory index",
		Long: `Armada generates a point-in-time inventory of the AWS accounts in an
organization and answers account-selection queries against it.

The tool provides two main phases:
  - generate: walk the Organizations API and save the inventory to S3
  - query: build an in-memory index from the inventory and resolve
    accounts by ID, alias, tag, OU membership, or region

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (ARMADA_*)
  3. Config file (armada.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via ARMADA_* environment variables.
  Nested fields use underscores
  (snapshot.bucket -> ARMADA_SNAPSHOT_BUCKET).

  See 'go doc github.com/armadaops/armada/pkg/config' for the full
  list.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate a documented config on first run.
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}
				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - defaults still work.
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			var err error
			cfg, err = ioconfig.Load(cfgFile)
			if err != nil {
				return err
			}

			logDir, err := ioconfig.ConfigDir()
			if err != nil {
				return err
			}
			return iologger.Init(logDir, cfg.Log)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./armada.yaml or ~/.config/armada/armada.yaml)")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for armada")

	rootCmd.AddCommand(getGenerateCmd())
	rootCmd.AddCommand(getQueryCmd())

	return rootCmd
}
