package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mhanafy/agentgate/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize agentgate configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the gateway and generates a .agentgate.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
