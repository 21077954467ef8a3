package review

// Payload is the backend's flat review representation: an ordered list of
// category titles plus the two comment collections, each comment tagged with
// the title of the category it belongs to.
type Payload struct {
	Titles          []string         `json:"titles"`
	CodeComments    []CodeComment    `json:"code_comments"`
	ProjectComments []ProjectComment `json:"project_comments"`
}

// CodeLine is one line of the annotated code, carried with its own ordering
// number.
type CodeLine struct {
	Order int    `json:"order"`
	Text  string `json:"text"`
}

// CodeComment is a review annotation tied to a specific file location.
// The backend sends the line span as start/end string numbers and the
// annotated code as an ordered line list; suggestion is null when the
// reviewer proposed no replacement.
type CodeComment struct {
	Title      string     `json:"title"`
	FilePath   string     `json:"filepath"`
	StartLine  int        `json:"start_string_number"`
	EndLine    int        `json:"end_string_number"`
	Comment    string     `json:"comment"`
	Suggestion string     `json:"suggestion"`
	Lines      []CodeLine `json:"lines"`
}

// ProjectComment is a review annotation not tied to any file.
type ProjectComment struct {
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// Kind distinguishes the two comment varieties inside a grouped category.
type Kind string

const (
	KindCode    Kind = "code"
	KindProject Kind = "project"
)

// Comment is one grouped annotation of either kind. Text carries the
// annotation body for both kinds; the location and code fields are set only
// for code comments.
type Comment struct {
	Kind       Kind
	Text       string
	FilePath   string
	StartLine  int
	EndLine    int
	Lines      []CodeLine
	Suggestion string
}

// CategoryGroup is one review category with its comments in append order.
type CategoryGroup struct {
	Title    string
	Comments []Comment
}

// CategoryCount is one chart series entry.
type CategoryCount struct {
	Title string
	Count int
}

// Stats holds the aggregate comment counts derived from a grouped review.
type Stats struct {
	Total       int
	PerCategory []CategoryCount
}
