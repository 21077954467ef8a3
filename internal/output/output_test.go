package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/revu/internal/review"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestColorHelpers(t *testing.T) {
	// Color helpers should return non-empty strings
	assert.NotEmpty(t, Cyan("test"))
	assert.NotEmpty(t, Green("test"))
	assert.NotEmpty(t, Yellow("test"))
	assert.NotEmpty(t, Red("test"))
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI()
	table := u.Table([]string{"Category", "Comments"})
	require.NotNil(t, table)

	table.Append([]string{"Security", "3"})
	table.Append([]string{"Style", "2"})
	err := table.Render()
	require.NoError(t, err)

	result := out.String()
	assert.True(t, strings.Contains(result, "Security") || strings.Contains(result, "SECURITY"),
		"table output should contain category titles")
}

func sampleGroups() []review.CategoryGroup {
	return []review.CategoryGroup{
		{
			Title: "Security",
			Comments: []review.Comment{
				{
					Kind:      review.KindCode,
					Text:      "Token read from the query string.",
					FilePath:  "auth/login.go",
					StartLine: 10,
					EndLine:   14,
					Lines: []review.CodeLine{
						{Order: 10, Text: "token := r.URL.Query().Get(\"token\")"},
						{Order: 11, Text: "session.Authorize(token)"},
					},
					Suggestion: "read the token from the Authorization header",
				},
				{Kind: review.KindProject, Text: "No rate limiting."},
			},
		},
		{Title: "Performance"},
	}
}

func TestReview(t *testing.T) {
	u, out, _ := newTestUI()
	u.Review(sampleGroups())

	result := out.String()
	assert.Contains(t, result, "Security")
	assert.Contains(t, result, "auth/login.go:10-14")
	assert.Contains(t, result, "Token read from the query string.")
	assert.Contains(t, result, "token := r.URL.Query().Get(\"token\")")
	assert.Contains(t, result, "session.Authorize(token)")
	assert.Contains(t, result, "Authorization header")
	assert.Contains(t, result, "No rate limiting.")
	assert.Contains(t, result, "Performance")
	assert.Contains(t, result, "no comments")
}

func TestPieChart(t *testing.T) {
	u, out, _ := newTestUI()
	u.PieChart(review.Stats{
		Total: 4,
		PerCategory: []review.CategoryCount{
			{Title: "Security", Count: 3},
			{Title: "Style", Count: 1},
			{Title: "Performance", Count: 0},
		},
	})

	result := out.String()
	assert.Contains(t, result, "75%")
	assert.Contains(t, result, "25%")
	assert.Contains(t, result, "0%")
	assert.Contains(t, result, "4 comments total")
}

func TestPieChart_EmptyStats(t *testing.T) {
	u, out, _ := newTestUI()
	u.PieChart(review.Stats{})
	assert.Contains(t, out.String(), "0 comments total")
}

func TestBarChart(t *testing.T) {
	u, out, _ := newTestUI()
	u.BarChart(review.Stats{
		Total: 3,
		PerCategory: []review.CategoryCount{
			{Title: "Security", Count: 2},
			{Title: "Style", Count: 1},
		},
	})

	result := out.String()
	assert.Contains(t, result, "Security")
	assert.Contains(t, result, "█")
	assert.Contains(t, result, "3 comments total")
}
