package review

// Group reshapes a flat payload into one group per category title, preserving
// the payload's title order exactly. Categories with no comments keep an empty
// group. Comments are appended in two passes: all code comments in payload
// order, then all project comments in payload order. A comment whose title
// matches no category is dropped; callers that want to surface the loss can
// count it with Unmatched.
//
// Group never mutates its input and returns the same result for the same
// payload.
func Group(p Payload) []CategoryGroup {
	groups := make([]CategoryGroup, len(p.Titles))
	index := make(map[string]int, len(p.Titles))
	for i, title := range p.Titles {
		groups[i] = CategoryGroup{Title: title}
		if _, ok := index[title]; !ok {
			index[title] = i
		}
	}

	for _, cc := range p.CodeComments {
		i, ok := index[cc.Title]
		if !ok {
			continue
		}
		groups[i].Comments = append(groups[i].Comments, Comment{
			Kind:       KindCode,
			Text:       cc.Comment,
			FilePath:   cc.FilePath,
			StartLine:  cc.StartLine,
			EndLine:    cc.EndLine,
			Lines:      cc.Lines,
			Suggestion: cc.Suggestion,
		})
	}

	for _, pc := range p.ProjectComments {
		i, ok := index[pc.Title]
		if !ok {
			continue
		}
		groups[i].Comments = append(groups[i].Comments, Comment{
			Kind: KindProject,
			Text: pc.Comment,
		})
	}

	return groups
}

// Unmatched counts the comments of both kinds whose category title does not
// appear in the payload's title list. These are the comments Group drops.
func Unmatched(p Payload) int {
	titles := make(map[string]bool, len(p.Titles))
	for _, t := range p.Titles {
		titles[t] = true
	}

	n := 0
	for _, cc := range p.CodeComments {
		if !titles[cc.Title] {
			n++
		}
	}
	for _, pc := range p.ProjectComments {
		if !titles[pc.Title] {
			n++
		}
	}
	return n
}
