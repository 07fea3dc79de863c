package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "agentgate",
	Short: "Webhook and API gateway for the portfolio-manager conversational agent",
	Long: `Agentgate fronts a conversational portfolio-management agent. It
dispatches webhook fulfillment requests to intent handlers, serves the
REST API backing the agent's tools, and simulates trade execution with
an approval workflow.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".agentgate.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
