// Package pipeline orchestrates per-document processing and the batch run
// over a whole corpus.
package pipeline

import (
	"fmt"

	"github.com/lingtools/elanstats/internal/eaf"
	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/stats"
)

// Processor turns one annotation document into sentence records. It holds
// only the compiled tier rules and is safe for concurrent use; speaker and
// graph state is created per document.
type Processor struct {
	rules *eaf.Ruleset
}

// NewProcessor compiles the corpus tier configuration. Invalid patterns
// reject the batch at startup.
func NewProcessor(cfg model.CorpusConfig) (*Processor, error) {
	rules, err := eaf.CompileRuleset(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile tier rules: %w", err)
	}
	return &Processor{rules: rules}, nil
}

// Sentences parses one document and extracts its sentence records:
// time-label table, segment graph, alignment resolution pass, then the
// two-pass main/aligned extraction.
func (p *Processor) Sentences(data []byte) ([]model.SentenceRecord, error) {
	doc, err := eaf.Decode(data)
	if err != nil {
		return nil, err
	}
	tlis := eaf.BuildTimeLabels(doc)
	graph := eaf.BuildGraph(doc, p.rules)
	graph.ResolveInherited()
	extractor := eaf.NewExtractor(eaf.NewResolver(p.rules), tlis, graph)
	return extractor.Sentences(doc), nil
}

// ProcessDocument extracts one document's sentences and folds them into
// the aggregator, returning the per-document totals.
func (p *Processor) ProcessDocument(data []byte, agg *stats.Aggregator) (stats.DocTotals, error) {
	records, err := p.Sentences(data)
	if err != nil {
		return stats.DocTotals{}, err
	}
	return agg.AddDocument(records), nil
}
