package cmd

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joescharf/revu/internal/sequencer"
	"github.com/joescharf/revu/internal/upload"
)

var (
	submitChart      string
	submitOutputDir  string
	submitNoDownload bool
)

var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Upload a source file or ZIP archive for review",
	Long: `Upload a single source file or ZIP archive to the review service.
Once the report is generated, the review comments are shown grouped by
category and the PDF report is downloaded next to the original file name
with a .pdf extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return submitRun(cmd.Context(), args[0])
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitChart, "chart", "", "Chart kind: pie or bar (default from config)")
	submitCmd.Flags().StringVarP(&submitOutputDir, "output", "o", "", "Directory for the downloaded PDF (default from config)")
	submitCmd.Flags().BoolVar(&submitNoDownload, "no-download", false, "Skip downloading the PDF report")
	rootCmd.AddCommand(submitCmd)
}

func submitRun(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	gate := upload.NewGate(ui)
	cand, err := gate.Stage(filepath.Base(path), detectMediaType(path), f)
	if err != nil {
		return err
	}

	seq := sequencer.New(getClient())
	ui.VerboseLog("uploading %s", cand.Name)
	if err := seq.Submit(ctx, cand); err != nil {
		return err
	}
	// A successful submission consumes the staged candidate.
	gate.Remove(cand.ID)
	ui.Success("Report id: %s", seq.ID())

	ui.VerboseLog("fetching report and review")
	seq.Wait()

	return renderResult(seq, submitChart, downloadDir(submitOutputDir), submitNoDownload)
}

// detectMediaType resolves the declared type from the file extension, falling
// back to a generic binary type the gate accepts.
func detectMediaType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
