package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hashportal",
	Short: "Hash-routed game portal served from JSON documents",
	Long: `HashPortal serves a single-page portal of links, training notes,
money-making guides and daily checklists. Pages are rendered on the server
from JSON documents and pushed to the browser over a websocket; the URL
fragment selects the view.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".hashportal.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
