package worker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/stats"
)

// stubProcessor treats the document bytes as a single word and emits one
// countable sentence plus a closing record. "bad" documents fail.
type stubProcessor struct{}

func (stubProcessor) ProcessDocument(data []byte, agg *stats.Aggregator) (stats.DocTotals, error) {
	if string(data) == "bad" {
		return stats.DocTotals{}, errors.New("broken document")
	}
	records := []model.SentenceRecord{
		{Text: string(data) + " слово", Speaker: "P1", Language: "l", Span: model.Span{Start: 0, End: 2}},
		{Text: "конец", Speaker: "P1", Language: "l", Span: model.Span{Start: 2, End: 3}},
	}
	return agg.AddDocument(records), nil
}

func stubFiles(n int) []model.SourceFile {
	files := make([]model.SourceFile, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, model.SourceFile{
			Path: fmt.Sprintf("doc%d.eaf", i),
			Data: []byte(fmt.Sprintf("слово%d", i)),
		})
	}
	return files
}

func TestProcessCorpus(t *testing.T) {
	files := append(stubFiles(5), model.SourceFile{Path: "bad.eaf", Data: []byte("bad")})

	results := ProcessCorpus(context.Background(), stubProcessor{}, files, 3)
	if len(results) != len(files) {
		t.Fatalf("Expected %d results, got %d", len(files), len(results))
	}

	merged := model.NewSpeakerStats()
	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			continue
		}
		merged.Merge(r.Stats)
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if merged.Tokens["P1"]["слово"] != 5 {
		t.Errorf(`"слово" count = %d, want 5`, merged.Tokens["P1"]["слово"])
	}
	if merged.Durations["P1"] != 10 {
		t.Errorf("P1 duration = %g, want 10", merged.Durations["P1"])
	}
}

func TestProcessCorpus_Empty(t *testing.T) {
	if results := ProcessCorpus(context.Background(), stubProcessor{}, nil, 4); results != nil {
		t.Errorf("Expected nil results for empty input, got %v", results)
	}
}

// Parallel processing with merged job-local accumulators yields the same
// figures as a single sequential accumulator.
func TestProcessCorpus_MatchesSequential(t *testing.T) {
	files := stubFiles(8)

	sequential := stats.NewAggregator()
	for _, f := range files {
		if _, err := (stubProcessor{}).ProcessDocument(f.Data, sequential); err != nil {
			t.Fatalf("ProcessDocument(%s): %v", f.Path, err)
		}
	}

	merged := model.NewSpeakerStats()
	for _, r := range ProcessCorpus(context.Background(), stubProcessor{}, files, 4) {
		if r.GetError() != nil {
			t.Fatalf("job %s failed: %v", r.Path, r.GetError())
		}
		merged.Merge(r.Stats)
	}

	if !reflect.DeepEqual(sequential.Stats(), merged) {
		t.Errorf("parallel = %+v, sequential = %+v", merged, sequential.Stats())
	}
}

// A corpus far larger than the pool's channel buffers must still drain:
// results are consumed while documents are being queued.
func TestProcessCorpus_ManyFilesFewWorkers(t *testing.T) {
	files := stubFiles(50)

	done := make(chan []*DocumentResult, 1)
	go func() {
		done <- ProcessCorpus(context.Background(), stubProcessor{}, files, 1)
	}()

	select {
	case results := <-done:
		if len(results) != len(files) {
			t.Fatalf("Expected %d results, got %d", len(files), len(results))
		}
		merged := model.NewSpeakerStats()
		for _, r := range results {
			if r.GetError() != nil {
				t.Fatalf("job %s failed: %v", r.Path, r.GetError())
			}
			merged.Merge(r.Stats)
		}
		if merged.Tokens["P1"]["слово"] != 50 {
			t.Errorf(`"слово" count = %d, want 50`, merged.Tokens["P1"]["слово"])
		}
	case <-time.After(30 * time.Second):
		t.Fatal("ProcessCorpus did not finish with more files than buffer capacity")
	}
}

func TestProcessCorpus_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := ProcessCorpus(ctx, stubProcessor{}, stubFiles(4), 2)
	for _, r := range results {
		if r.GetError() == nil {
			t.Errorf("job %s succeeded after cancellation", r.Path)
		}
	}
}

func TestPool_WorkerCountClamped(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&DocumentJob{File: model.SourceFile{Path: "a", Data: []byte("x")}, Processor: stubProcessor{}})
	pool.Close()
	results := pool.Wait()
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if err := results[0].GetError(); err != nil {
		t.Errorf("job failed: %v", err)
	}
}
