package model

import (
	"fmt"
	"strconv"
)

// Timestamps in annotation documents are in milliseconds.
const TimeMultiplier = 1000

// TimeLabel is one named anchor on the document timeline. Value keeps the
// millisecond timestamp exactly as written; an anchor declared without a
// timestamp has an empty Value and counts as unresolved.
type TimeLabel struct {
	Ordinal int    `json:"n"`
	Value   string `json:"time"`
}

// TimeLabelTable maps time-anchor identifiers to labels. Built once per
// document, immutable afterwards.
type TimeLabelTable map[string]TimeLabel

// Seconds resolves a time-anchor reference to seconds. Unknown identifiers
// and anchors without a timestamp are unresolved, not zero.
func (t TimeLabelTable) Seconds(id string) (float64, error) {
	label, ok := t[id]
	if !ok {
		return 0, fmt.Errorf("unknown time anchor %q", id)
	}
	if label.Value == "" {
		return 0, fmt.Errorf("time anchor %q has no timestamp", id)
	}
	ms, err := strconv.ParseFloat(label.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("time anchor %q: %w", id, err)
	}
	return ms / TimeMultiplier, nil
}
