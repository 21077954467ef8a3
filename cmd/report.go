package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joescharf/revu/internal/sequencer"
)

var (
	reportChart      string
	reportOutputDir  string
	reportNoDownload bool
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Fetch and display an existing review report",
	Long: `Fetch the report and review data for a previously generated report
identifier and display them, without uploading anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportRun(cmd.Context(), args[0])
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportChart, "chart", "", "Chart kind: pie or bar (default from config)")
	reportCmd.Flags().StringVarP(&reportOutputDir, "output", "o", "", "Directory for the downloaded PDF (default from config)")
	reportCmd.Flags().BoolVar(&reportNoDownload, "no-download", false, "Skip downloading the PDF report")
	rootCmd.AddCommand(reportCmd)
}

func reportRun(ctx context.Context, id string) error {
	seq := sequencer.New(getClient())

	ui.VerboseLog("fetching report and review for %s", id)
	seq.Open(ctx, id)
	seq.Wait()

	return renderResult(seq, reportChart, downloadDir(reportOutputDir), reportNoDownload)
}
