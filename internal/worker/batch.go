package worker

import (
	"context"

	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/stats"
)

// Processor is the per-document pipeline stage the jobs call into.
type Processor interface {
	ProcessDocument(data []byte, agg *stats.Aggregator) (stats.DocTotals, error)
}

// DocumentJob processes one annotation document into a job-local
// accumulator, keeping documents fully independent.
type DocumentJob struct {
	File      model.SourceFile
	Processor Processor
}

// DocumentResult is the outcome of one document job. Stats carries the
// job-local accumulator to be merged by the caller.
type DocumentResult struct {
	Path   string
	Totals stats.DocTotals
	Stats  *model.SpeakerStats
	Error  error
}

// GetError returns the job error, if any.
func (r *DocumentResult) GetError() error {
	return r.Error
}

// Execute runs the job.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &DocumentResult{Path: j.File.Path, Error: err}
	}
	agg := stats.NewAggregator()
	totals, err := j.Processor.ProcessDocument(j.File.Data, agg)
	if err != nil {
		return &DocumentResult{Path: j.File.Path, Error: err}
	}
	return &DocumentResult{Path: j.File.Path, Totals: totals, Stats: agg.Stats()}
}

// ProcessCorpus processes files concurrently and returns one result per
// file. Merging the partial accumulators is commutative and associative,
// so result order does not affect the final figures.
func ProcessCorpus(ctx context.Context, proc Processor, files []model.SourceFile, workers int) []*DocumentResult {
	if len(files) == 0 {
		return nil
	}

	pool := NewPool(workers)
	pool.Start()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	// Submission runs aside while Wait drains results; queuing the whole
	// corpus up front would fill the bounded results buffer and block
	// the workers.
	go func() {
		for _, file := range files {
			pool.Submit(&DocumentJob{File: file, Processor: proc})
		}
		pool.Close()
	}()

	results := pool.Wait()
	close(done)

	out := make([]*DocumentResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*DocumentResult))
	}
	return out
}
