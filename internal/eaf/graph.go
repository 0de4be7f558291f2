package eaf

import (
	"strings"

	"github.com/lingtools/elanstats/internal/model"
)

// ChildKey indexes the children of a segment within one semantic tier type.
type ChildKey struct {
	Parent   string
	TierType string
}

// Graph is the per-document segment table plus the analysis-tier child
// index. Segments are stored in an append-only table keyed by identifier,
// so parent references resolve by lookup regardless of traversal order.
type Graph struct {
	Segments map[string]*model.Segment
	Children map[ChildKey][]string

	order []string // insertion order, for the deterministic resolution pass
}

// BuildGraph scans every tier of the document and records each annotation
// node: text content, parent reference and time references. Time references
// missing from a node are inherited from the parent entry already recorded
// at that point; cross-tier forward references stay unresolved here and are
// picked up by ResolveInherited.
func BuildGraph(doc *Document, rs *Ruleset) *Graph {
	g := &Graph{
		Segments: make(map[string]*model.Segment),
		Children: make(map[ChildKey][]string),
	}
	for i := range doc.Tiers {
		tier := &doc.Tiers[i]
		if tier.ID == "" {
			continue
		}
		tierType := rs.AnalysisType(tier)
		for _, ann := range tier.Annotations {
			seg := segmentOf(&ann)
			if seg == nil || seg.ID == "" {
				continue
			}
			if seg.Parent == seg.ID {
				// Self references carry no usable alignment.
				seg.Parent = ""
			}
			if seg.Start == "" {
				if parent, ok := g.Segments[seg.Parent]; ok && parent.Start != "" {
					seg.Start = parent.Start
				}
			}
			if seg.End == "" {
				if parent, ok := g.Segments[seg.Parent]; ok && parent.End != "" {
					seg.End = parent.End
				}
			}
			g.Segments[seg.ID] = seg
			g.order = append(g.order, seg.ID)
			if seg.Parent == "" || tierType == "" {
				continue
			}
			key := ChildKey{Parent: seg.Parent, TierType: tierType}
			g.Children[key] = append(g.Children[key], seg.ID)
		}
	}
	return g
}

// segmentOf flattens the two annotation node kinds into a segment.
func segmentOf(ann *Annotation) *model.Segment {
	switch {
	case ann.Alignable != nil:
		return &model.Segment{
			ID:    ann.Alignable.ID,
			Text:  strings.TrimSpace(ann.Alignable.Value),
			Start: ann.Alignable.Start,
			End:   ann.Alignable.End,
		}
	case ann.Ref != nil:
		return &model.Segment{
			ID:     ann.Ref.ID,
			Text:   strings.TrimSpace(ann.Ref.Value),
			Parent: ann.Ref.Ref,
		}
	default:
		return nil
	}
}

// ResolveInherited back-fills time references that document order left
// unresolved: segments whose parents were recorded later, possibly in a
// different tier. Each pass copies references one parent hop closer, so
// the fixpoint is reached within segment-count iterations.
func (g *Graph) ResolveInherited() {
	for pass := 0; pass < len(g.order); pass++ {
		changed := false
		for _, id := range g.order {
			seg := g.Segments[id]
			if seg.Aligned() || seg.Parent == "" {
				continue
			}
			parent, ok := g.Segments[seg.Parent]
			if !ok {
				// Dangling parent reference: treated as no parent.
				continue
			}
			if seg.Start == "" && parent.Start != "" {
				seg.Start = parent.Start
				changed = true
			}
			if seg.End == "" && parent.End != "" {
				seg.End = parent.End
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
