package eaf

import "github.com/lingtools/elanstats/internal/model"

// paraRef links a main-tier annotation to the paragraph id and time span
// its aligned-tier counterparts reuse.
type paraRef struct {
	id   int
	span model.Span
}

// Extractor walks the document's main tiers and then its aligned tiers and
// yields sentence records in tier-encounter order. Output is not
// chronological; the aggregator sorts by (language, start time).
type Extractor struct {
	res   *Resolver
	tlis  model.TimeLabelTable
	graph *Graph

	aID2pID map[string]paraRef
	paraSeq int
}

// NewExtractor creates an extractor over one document's resolved state.
func NewExtractor(res *Resolver, tlis model.TimeLabelTable, graph *Graph) *Extractor {
	return &Extractor{
		res:     res,
		tlis:    tlis,
		graph:   graph,
		aID2pID: make(map[string]paraRef),
	}
}

// Sentences extracts all sentence records of the document. Main tiers are
// fully processed before any aligned tier, so every aligned segment finds
// its parent's paragraph id and span in place or is skipped. The two roles
// are matched independently: a tier whose patterns qualify it for both is
// processed in both passes. A document with no main tiers yields nothing.
func (e *Extractor) Sentences(doc *Document) []model.SentenceRecord {
	var mains, aligneds []*Tier
	for i := range doc.Tiers {
		tier := &doc.Tiers[i]
		if tier.ID == "" {
			continue
		}
		if e.res.IsMain(tier) {
			mains = append(mains, tier)
		}
		if e.res.IsAligned(tier) {
			aligneds = append(aligneds, tier)
		}
	}
	if len(mains) == 0 {
		return nil
	}

	var records []model.SentenceRecord
	for _, tier := range mains {
		records = append(records, e.processTier(tier, false)...)
	}
	for _, tier := range aligneds {
		records = append(records, e.processTier(tier, true)...)
	}
	return records
}

// processTier extracts the records of one tier. A tier that resolves to no
// language is skipped entirely.
func (e *Extractor) processTier(tier *Tier, aligned bool) []model.SentenceRecord {
	lang := e.res.Language(tier)
	if lang == "" {
		return nil
	}
	speaker := e.res.Speaker(tier, aligned)

	var records []model.SentenceRecord
	for _, ann := range tier.Annotations {
		id := annotationID(&ann)
		seg, ok := e.graph.Segments[id]
		if id == "" || !ok {
			continue
		}

		var span model.Span
		paraID := 0
		if !aligned {
			if !seg.Aligned() {
				// No usable time span; never fabricated.
				continue
			}
			start, err := e.tlis.Seconds(seg.Start)
			if err != nil {
				continue
			}
			end, err := e.tlis.Seconds(seg.End)
			if err != nil || end < start {
				continue
			}
			span = model.Span{Start: start, End: end}
			if e.res.HasAligned() {
				e.paraSeq++
				paraID = e.paraSeq
				e.aID2pID[id] = paraRef{id: paraID, span: span}
			}
		} else {
			if seg.Parent == "" {
				continue
			}
			ref, ok := e.aID2pID[seg.Parent]
			if !ok {
				// Parent was never emitted as a resolved main-tier
				// sentence, so there is no span to inherit.
				continue
			}
			span = ref.span
			paraID = ref.id
		}

		records = append(records, model.SentenceRecord{
			Text:     seg.Text,
			Language: lang,
			Speaker:  speaker,
			Span:     span,
			ParaID:   paraID,
		})
	}
	return records
}

func annotationID(ann *Annotation) string {
	switch {
	case ann.Alignable != nil:
		return ann.Alignable.ID
	case ann.Ref != nil:
		return ann.Ref.ID
	default:
		return ""
	}
}
