package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/joescharf/revu/internal/sequencer"
	"github.com/joescharf/revu/internal/view"
)

// downloadDir resolves the PDF target directory from a flag value or config.
func downloadDir(flag string) string {
	if flag != "" {
		return flag
	}
	return viper.GetString("download.dir")
}

// chartKind resolves the chart kind from a flag value or config, defaulting
// to pie for anything unrecognized.
func chartKind(flag string) view.Chart {
	kind := flag
	if kind == "" {
		kind = viper.GetString("chart.kind")
	}
	if kind == string(view.ChartBar) {
		return view.ChartBar
	}
	return view.ChartPie
}

// renderResult shows both presentations of a finished fetch, walking the view
// mode through its tabs: the document tab first (status plus optional
// download), then the review tab (grouped comments plus chart). One resource
// failing does not suppress the other; an error is returned only when nothing
// could be shown.
func renderResult(seq *sequencer.Sequencer, chartFlag, dir string, noDownload bool) error {
	snap := seq.Snapshot()
	mode := view.NewMode()
	if chartKind(chartFlag) == view.ChartBar {
		mode.ToggleChart()
	}

	renderTab(mode, snap, seq, dir, noDownload)
	mode.ShowReview()
	renderTab(mode, snap, seq, dir, noDownload)

	if snap.DocState == sequencer.ResourceFailed && snap.RevState == sequencer.ResourceFailed {
		return fmt.Errorf("report %s: both fetches failed", snap.ID)
	}
	return nil
}

// renderTab prints the section the mode's current tab selects.
func renderTab(mode *view.Mode, snap sequencer.Snapshot, seq *sequencer.Sequencer, dir string, noDownload bool) {
	switch mode.Tab {
	case view.TabDocument:
		switch snap.DocState {
		case sequencer.ResourceReady:
			if snap.Document.Pages > 0 {
				ui.Success("Report PDF ready (%d pages)", snap.Document.Pages)
			} else {
				ui.Success("Report PDF ready")
			}
			if !noDownload {
				// A failed download is logged, never fatal.
				if path, err := seq.SaveReport(dir); err != nil {
					ui.Error("download failed: %v", err)
				} else {
					ui.Success("Saved %s", path)
				}
			}
		case sequencer.ResourceFailed:
			ui.Error("report fetch failed: %v", snap.DocErr)
		}

	case view.TabReview:
		switch snap.RevState {
		case sequencer.ResourceReady:
			ui.Review(snap.Grouped)
			if snap.Unmatched > 0 {
				ui.Warning("%d comment(s) referenced an unknown category and were not shown", snap.Unmatched)
			}
			fmt.Fprintln(ui.Out)
			if mode.Chart == view.ChartBar {
				ui.BarChart(snap.Stats)
			} else {
				ui.PieChart(snap.Stats)
			}
		case sequencer.ResourceFailed:
			ui.Error("review fetch failed: %v", snap.RevErr)
		}
	}
}
