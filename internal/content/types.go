package content

// DailyType is the recurrence bucket of a daily item.
type DailyType string

const (
	Daily   DailyType = "daily"
	Weekly  DailyType = "weekly"
	Monthly DailyType = "monthly"
)

// DailyTypes is the fixed type vocabulary in display order.
var DailyTypes = []DailyType{Daily, Weekly, Monthly}

// Valid reports whether t is part of the type vocabulary.
func (t DailyType) Valid() bool {
	switch t {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// Label returns the display label for the type tag.
func (t DailyType) Label() string {
	switch t {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	default:
		return string(t)
	}
}

// Link is one entry of the home links document.
type Link struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Table is an optional tabular block inside a section.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Section is one titled block of an entry.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Note    string `json:"note,omitempty"`
	Table   *Table `json:"table,omitempty"`
}

// Entry is a record of the training and money documents. It carries either
// Content or Sections; Tags is only meaningful for training.
type Entry struct {
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// HasSections reports whether the entry uses the sectioned shape.
func (e Entry) HasSections() bool {
	return e.Sections != nil
}

// DailyItem is one record of the dailies document.
type DailyItem struct {
	Title        string    `json:"title"`
	Type         DailyType `json:"type"`
	Note         string    `json:"note,omitempty"`
	CooldownDays float64   `json:"cooldownDays,omitempty"`
}

// Document is an ordered list of records of one shape.
type Document[T any] []T
