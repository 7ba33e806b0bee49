package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hashportal/hashportal/internal/contentcheck"
	"github.com/hashportal/hashportal/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the JSON documents under the content directory",
	Long: `Walks content.dir, parses every document matched by content.include as
a JSON array, and decodes the configured links, training, money and dailies
documents into their shapes. Exits non-zero if anything fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Content.Dir == "" {
			return fmt.Errorf("check needs content.dir; remote documents at %s cannot be walked", cfg.Content.BaseURL)
		}

		report, err := contentcheck.Run(cmd.Context(), contentcheck.Options{
			Root:      cfg.Content.Dir,
			Include:   cfg.Content.Include,
			Documents: documentsFromConfig(cfg),
			Reporter:  progress.NewReporter(),
		})
		if err != nil {
			return fmt.Errorf("checking %s: %w", cfg.Content.Dir, err)
		}

		if verbose {
			for _, r := range report.Results {
				if r.Err == nil {
					fmt.Fprintf(os.Stderr, "ok   %s (%s, %d items, %s)\n", r.File.RelPath, r.Shape, r.Items, r.File.ContentHash[:12])
				}
			}
		}

		fmt.Fprintf(os.Stderr, "%d documents checked, %d failed, %d warnings\n", len(report.Results), report.Failed(), report.Warnings())
		if !report.OK() {
			return fmt.Errorf("%d documents failed", report.Failed())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
