// Package eaf reconstructs segment trees from tiered-annotation XML
// documents and extracts ordered per-speaker sentence records from them.
package eaf

import (
	"encoding/xml"
	"fmt"
)

// Document is the root annotation container: a global list of time anchors
// followed by tier declarations.
type Document struct {
	XMLName   xml.Name  `xml:"ANNOTATION_DOCUMENT"`
	TimeOrder TimeOrder `xml:"TIME_ORDER"`
	Tiers     []Tier    `xml:"TIER"`
}

// TimeOrder holds the document's time anchors in declaration order.
type TimeOrder struct {
	Slots []TimeSlot `xml:"TIME_SLOT"`
}

// TimeSlot is one time anchor. Value is empty when the anchor carries no
// timestamp.
type TimeSlot struct {
	ID    string `xml:"TIME_SLOT_ID,attr"`
	Value string `xml:"TIME_VALUE,attr"`
}

// Tier is one annotation track. All attributes except ID are optional.
type Tier struct {
	ID          string       `xml:"TIER_ID,attr"`
	TypeRef     string       `xml:"LINGUISTIC_TYPE_REF,attr"`
	Participant string       `xml:"PARTICIPANT,attr"`
	ParentRef   string       `xml:"PARENT_REF,attr"`
	Annotations []Annotation `xml:"ANNOTATION"`
}

// Annotation wraps one of the two node kinds: an alignable annotation
// anchored to the timeline directly, or a reference annotation pointing at
// a parent annotation.
type Annotation struct {
	Alignable *AlignableAnnotation `xml:"ALIGNABLE_ANNOTATION"`
	Ref       *RefAnnotation       `xml:"REF_ANNOTATION"`
}

// AlignableAnnotation is a top-level node with direct time references.
type AlignableAnnotation struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Start string `xml:"TIME_SLOT_REF1,attr"`
	End   string `xml:"TIME_SLOT_REF2,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

// RefAnnotation is a dependent node referencing its parent annotation.
type RefAnnotation struct {
	ID    string `xml:"ANNOTATION_ID,attr"`
	Ref   string `xml:"ANNOTATION_REF,attr"`
	Value string `xml:"ANNOTATION_VALUE"`
}

// Decode parses a whole annotation document. A parse failure is fatal for
// this document only; the batch driver logs it and moves on.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode annotation document: %w", err)
	}
	return &doc, nil
}
