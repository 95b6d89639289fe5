package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/grocer/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize grocer configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure grocer for your store and generates a .grocer.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
