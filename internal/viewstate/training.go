package viewstate

import "github.com/hashportal/hashportal/internal/content"

// Training is the state of the training view: a tag filter and the set of
// items whose detail panel is expanded.
type Training struct {
	Tags *Filter[string]
	open IDSet
}

// NewTraining returns training state over the given tag vocabulary.
func NewTraining(tags []string) *Training {
	return &Training{
		Tags: NewFilter(tags),
		open: make(IDSet),
	}
}

func (t *Training) ToggleTag(tag string) bool {
	return t.Tags.Toggle(tag)
}

// ToggleOpen expands or collapses an item and returns its new state.
func (t *Training) ToggleOpen(id string) bool {
	if t.open.Has(id) {
		delete(t.open, id)
		return false
	}
	if id == "" {
		return false
	}
	t.open[id] = struct{}{}
	return true
}

func (t *Training) IsOpen(id string) bool {
	return t.open.Has(id)
}

// TrainingRow is one visible entry of the training projection.
type TrainingRow struct {
	ID    string
	Entry content.Entry
	Open  bool
}

// Project returns the entries whose tags intersect the active tags (all
// entries when no tag is active). Expanded state is remembered for entries
// the filter currently hides.
func (t *Training) Project(doc content.Document[content.Entry]) []TrainingRow {
	rows := make([]TrainingRow, 0, len(doc))
	for i, entry := range doc {
		if !t.Tags.Pass(entry.Tags...) {
			continue
		}
		id := content.TrainingItemID(entry, i)
		rows = append(rows, TrainingRow{ID: id, Entry: entry, Open: t.open.Has(id)})
	}
	return rows
}
