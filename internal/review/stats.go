package review

// Summarize derives the total comment count and the per-category chart series
// from a grouped review. Category order is preserved. The grouped structure is
// not modified.
func Summarize(groups []CategoryGroup) Stats {
	stats := Stats{PerCategory: make([]CategoryCount, 0, len(groups))}
	for _, g := range groups {
		stats.PerCategory = append(stats.PerCategory, CategoryCount{Title: g.Title, Count: len(g.Comments)})
		stats.Total += len(g.Comments)
	}
	return stats
}
