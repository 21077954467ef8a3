package output

import (
	"fmt"
	"strings"

	"github.com/joescharf/revu/internal/review"
)

const barMaxWidth = 40

// Review prints the grouped comments, one section per category in group
// order. Empty categories are shown with their heading so the category list
// always mirrors the backend's.
func (u *UI) Review(groups []review.CategoryGroup) {
	for _, g := range groups {
		fmt.Fprintf(u.Out, "\n%s (%d)\n", Cyan(g.Title), len(g.Comments))
		fmt.Fprintln(u.Out, strings.Repeat("─", 40))

		if len(g.Comments) == 0 {
			fmt.Fprintln(u.Out, "  no comments")
			continue
		}

		for _, c := range g.Comments {
			switch c.Kind {
			case review.KindCode:
				fmt.Fprintf(u.Out, "  %s:%d-%d\n", Yellow(c.FilePath), c.StartLine, c.EndLine)
				if c.Text != "" {
					fmt.Fprintf(u.Out, "  %s\n", c.Text)
				}
				for _, line := range c.Lines {
					fmt.Fprintf(u.Out, "    %s\n", line.Text)
				}
				if c.Suggestion != "" {
					fmt.Fprintf(u.Out, "    suggestion: %s\n", Green(c.Suggestion))
				}
			case review.KindProject:
				fmt.Fprintf(u.Out, "  %s\n", c.Text)
			}
		}
	}
}

// PieChart prints the per-category counts as a share table, the text stand-in
// for the pie presentation.
func (u *UI) PieChart(stats review.Stats) {
	table := u.Table([]string{"Category", "Comments", "Share"})
	for _, c := range stats.PerCategory {
		share := "0%"
		if stats.Total > 0 {
			share = fmt.Sprintf("%.0f%%", float64(c.Count)/float64(stats.Total)*100)
		}
		_ = table.Append([]string{c.Title, fmt.Sprintf("%d", c.Count), share})
	}
	_ = table.Render()
	fmt.Fprintf(u.Out, "\n%d comments total\n", stats.Total)
}

// BarChart prints the per-category counts as proportional bars scaled to the
// largest category.
func (u *UI) BarChart(stats review.Stats) {
	maxCount := 0
	width := 0
	for _, c := range stats.PerCategory {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		if len(c.Title) > width {
			width = len(c.Title)
		}
	}

	for _, c := range stats.PerCategory {
		bar := ""
		if maxCount > 0 && c.Count > 0 {
			n := c.Count * barMaxWidth / maxCount
			if n == 0 {
				n = 1
			}
			bar = strings.Repeat("█", n)
		}
		fmt.Fprintf(u.Out, "%-*s %s %d\n", width, c.Title, Cyan(bar), c.Count)
	}
	fmt.Fprintf(u.Out, "\n%d comments total\n", stats.Total)
}
