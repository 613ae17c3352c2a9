package master

// Catalog is the read-only index of multi-version questions, built once by
// Parse. Single-variant questions are not indexed; they need no planning.
type Catalog struct {
	groups map[string]*Question
	order  []string
}

func newCatalog(questions []*Question) *Catalog {
	c := &Catalog{groups: map[string]*Question{}}
	for _, question := range questions {
		if len(question.Variants) < 2 {
			continue
		}
		c.groups[question.ID] = question
		c.order = append(c.order, question.ID)
	}
	return c
}

// Lookup returns the variant group for a question id.
func (c *Catalog) Lookup(questionID string) (*Question, bool) {
	question, ok := c.groups[questionID]
	return question, ok
}

// QuestionIDs returns the multi-version question ids in document order.
func (c *Catalog) QuestionIDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of variant groups.
func (c *Catalog) Len() int {
	return len(c.order)
}
