package eaf

import "github.com/lingtools/elanstats/internal/model"

// BuildTimeLabels indexes every time anchor of the document, preserving
// declaration order as the ordinal. Anchors without a timestamp keep an
// empty value so that downstream resolution rejects them instead of
// assuming zero.
func BuildTimeLabels(doc *Document) model.TimeLabelTable {
	table := make(model.TimeLabelTable, len(doc.TimeOrder.Slots))
	for i, slot := range doc.TimeOrder.Slots {
		if slot.ID == "" {
			continue
		}
		table[slot.ID] = model.TimeLabel{Ordinal: i, Value: slot.Value}
	}
	return table
}
