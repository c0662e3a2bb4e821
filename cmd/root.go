package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finbooks/reportctl/internal/build"
)

var (
	// cfgFile parameter
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:          build.Slug,
		Short:        "Financial report execution orchestrator.",
		Long:         `Runs cataloged financial report jobs in dependency order and records their outcomes.`,
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func registerCommands() {
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(versionCmd())
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(
			&cfgFile, "config", "",
			"config file (default is $XDG_CONFIG_HOME/reportctl/config.yaml)",
		)

	registerCommands()
}
