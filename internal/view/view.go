// Package view tracks which presentation is active. Pure state, no async.
package view

// Tab selects between the document and review presentations.
type Tab string

const (
	TabDocument Tab = "document"
	TabReview   Tab = "review"
)

// Chart selects the statistics chart kind.
type Chart string

const (
	ChartPie Chart = "pie"
	ChartBar Chart = "bar"
)

// WidthStep is the fixed document width increment.
const WidthStep = 100

// DefaultWidth is the initial document width.
const DefaultWidth = 800

// Mode holds the presentation state for one session: active tab, chart kind,
// and document width.
type Mode struct {
	Tab   Tab
	Chart Chart
	Width int
}

// NewMode returns the initial presentation state: document tab, pie chart.
func NewMode() *Mode {
	return &Mode{
		Tab:   TabDocument,
		Chart: ChartPie,
		Width: DefaultWidth,
	}
}

// ShowDocument switches to the document tab.
func (m *Mode) ShowDocument() { m.Tab = TabDocument }

// ShowReview switches to the review tab.
func (m *Mode) ShowReview() { m.Tab = TabReview }

// ToggleChart flips between pie and bar.
func (m *Mode) ToggleChart() {
	if m.Chart == ChartPie {
		m.Chart = ChartBar
	} else {
		m.Chart = ChartPie
	}
}

// Widen increases the document width by one step.
func (m *Mode) Widen() { m.Width += WidthStep }

// Narrow decreases the document width by one step. There is no lower bound;
// repeated calls can drive the width negative.
func (m *Mode) Narrow() { m.Width -= WidthStep }
