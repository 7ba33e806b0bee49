package viewstate

import "github.com/hashportal/hashportal/internal/content"

// Dailies is the state of the dailies view: a type filter plus the set of
// items dismissed until the next reload.
type Dailies struct {
	Types  *Filter[content.DailyType]
	hidden IDSet
}

// NewDailies returns dailies state with no type selected and nothing hidden.
func NewDailies() *Dailies {
	return &Dailies{
		Types:  NewFilter(content.DailyTypes),
		hidden: make(IDSet),
	}
}

// ToggleType flips one type flag.
func (d *Dailies) ToggleType(t content.DailyType) bool {
	return d.Types.Toggle(t)
}

// Hide dismisses an item for the rest of the session.
func (d *Dailies) Hide(id string) {
	if id == "" {
		return
	}
	d.hidden[id] = struct{}{}
}

// ResetHidden brings every dismissed item back.
func (d *Dailies) ResetHidden() {
	clear(d.hidden)
}

func (d *Dailies) IsHidden(id string) bool {
	return d.hidden.Has(id)
}

// HiddenCount is the number of dismissed ids, including ids that no longer
// match a row of the current document.
func (d *Dailies) HiddenCount() int {
	return len(d.hidden)
}

// DailyRow is one visible item of the dailies projection.
type DailyRow struct {
	ID   string
	Item content.DailyItem
}

// Project returns the rows that pass the type filter and are not hidden,
// in document order.
func (d *Dailies) Project(doc content.Document[content.DailyItem]) []DailyRow {
	rows := make([]DailyRow, 0, len(doc))
	for i, item := range doc {
		id := content.DailyItemID(item, i)
		if d.hidden.Has(id) {
			continue
		}
		if !d.Types.Pass(item.Type) {
			continue
		}
		rows = append(rows, DailyRow{ID: id, Item: item})
	}
	return rows
}
