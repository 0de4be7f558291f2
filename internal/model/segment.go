package model

// Segment is one annotation node of a document. References are by
// identifier, not ownership: the parent may appear in any tier, before or
// after this segment in document order. Start and End hold time-anchor
// identifiers; either both are set or both are empty.
type Segment struct {
	ID     string
	Text   string
	Parent string // "" when the segment is top-level
	Start  string // time-anchor id, "" when unresolved
	End    string // time-anchor id, "" when unresolved
}

// Aligned reports whether the segment carries both time references.
func (s *Segment) Aligned() bool {
	return s.Start != "" && s.End != ""
}

// Span is a resolved time span in seconds.
type Span struct {
	Start float64 `json:"off_start_src"`
	End   float64 `json:"off_end_src"`
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// SentenceRecord is one normalized sentence yielded to the aggregator.
// ParaID links a main-tier sentence to its aligned-tier counterparts;
// zero means no paragraph alignment.
type SentenceRecord struct {
	Text     string
	Language string
	Speaker  string // "" when unknown
	Span     Span
	ParaID   int
}
