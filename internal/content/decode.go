package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Decode parses a JSON document into an ordered list of T. The top level
// must be an array; unknown fields are ignored and missing fields are left
// at their zero value.
func Decode[T any](data []byte) (Document[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("document is not a JSON array")
	}
	var doc Document[T]
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document[T]{}
	}
	return doc, nil
}

// DailyItemID is the session-local id of a daily item: type, position and
// title joined with ':'.
func DailyItemID(item DailyItem, index int) string {
	return string(item.Type) + ":" + strconv.Itoa(index) + ":" + item.Title
}

// TrainingItemID is the session-local id of a training entry.
func TrainingItemID(entry Entry, index int) string {
	return strconv.Itoa(index) + ":" + entry.Title
}

// FormatDays renders a cooldown without a trailing ".0" for whole days.
func FormatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64)
}
