package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joescharf/revu/internal/report"
)

var downloadOutputDir string

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download the PDF report for an identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return downloadRun(cmd.Context(), args[0])
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutputDir, "output", "o", "", "Directory for the downloaded PDF (default from config)")
	rootCmd.AddCommand(downloadCmd)
}

func downloadRun(ctx context.Context, id string) error {
	data, err := getClient().GetReport(ctx, id)
	if err != nil {
		return err
	}

	doc := report.New(data)
	dir := downloadDir(downloadOutputDir)

	path := filepath.Join(dir, report.Filename("", id))
	if err := report.Save(doc, path); err != nil {
		return fmt.Errorf("download report %s: %w", id, err)
	}

	if doc.Pages > 0 {
		ui.Success("Saved %s (%d pages)", path, doc.Pages)
	} else {
		ui.Success("Saved %s", path)
	}
	return nil
}
