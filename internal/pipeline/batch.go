package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/stats"
)

// Batch accumulates a sequential run over a corpus. One Batch lives for a
// whole run; the per-speaker accumulator inside it is the durable output.
type Batch struct {
	proc *Processor
	agg  *stats.Aggregator
	log  *logrus.Logger

	Documents           int
	Failures            int
	TranscribedDuration float64
	Tokens              int
}

// NewBatch compiles the corpus configuration and prepares a fresh
// accumulator.
func NewBatch(cfg model.CorpusConfig, log *logrus.Logger) (*Batch, error) {
	proc, err := NewProcessor(cfg)
	if err != nil {
		return nil, err
	}
	return &Batch{proc: proc, agg: stats.NewAggregator(), log: log}, nil
}

// Processor exposes the compiled document processor, shared with the
// parallel path.
func (b *Batch) Processor() *Processor {
	return b.proc
}

// Stats returns the accumulated per-speaker state.
func (b *Batch) Stats() *model.SpeakerStats {
	return b.agg.Stats()
}

// Add processes one document. A malformed document is logged and counted
// as a failure without aborting the batch. Returns ctx.Err() when the
// driver should stop before the next document.
func (b *Batch) Add(ctx context.Context, file model.SourceFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.WithField("file", file.Path).Info("document read")
	totals, err := b.proc.ProcessDocument(file.Data, b.agg)
	b.Record(file.Path, totals, err)
	return nil
}

// Record folds one document outcome into the batch totals. The parallel
// path calls it for results produced by worker-local accumulators.
func (b *Batch) Record(path string, totals stats.DocTotals, err error) {
	if err != nil {
		b.Failures++
		b.log.WithField("file", path).WithError(err).Warn("document skipped")
		return
	}
	b.Documents++
	b.TranscribedDuration += totals.Duration
	b.Tokens += totals.Tokens
	b.log.WithField("file", path).Infof("%gs., %d words", totals.Duration, totals.Tokens)
}

// Absorb merges a worker-local accumulator into the batch accumulator.
func (b *Batch) Absorb(partial *model.SpeakerStats) {
	b.agg.Stats().Merge(partial)
}
