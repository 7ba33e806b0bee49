package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hashportal/hashportal/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hashportal configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the portal and generates a .hashportal.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
