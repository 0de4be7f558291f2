// Package stats normalizes, tokenizes and accumulates sentence records
// into corpus-wide per-speaker figures.
package stats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lingtools/elanstats/internal/model"
)

var (
	// Editorial markers such as "[нрзб" or "говорит X]" notes.
	rxEditorial = regexp.MustCompile(`\[нрзб|говорит [^\[\]]+\] *`)
	// Punctuation, quote and bracket clutter.
	rxClutter = regexp.MustCompile(`[/\[\]"?!]+`)
	// Word runs. RE2 has no Unicode-aware \b, so tokens are matched as
	// letter/digit runs and trailing hyphens trimmed afterwards.
	rxToken = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_-]*`)
)

// NormalizeSentence lower-cases a sentence and strips editorial
// annotations, punctuation clutter and ellipses.
func NormalizeSentence(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	text = rxEditorial.ReplaceAllString(text, "")
	text = rxClutter.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "...", "")
	return text
}

// Tokenize splits normalized text into word tokens. Internal hyphens are
// kept ("кто-то"), trailing ones are not.
func Tokenize(text string) []string {
	matches := rxToken.FindAllString(text, -1)
	tokens := matches[:0]
	for _, m := range matches {
		m = strings.TrimRight(m, "-")
		if m != "" {
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// DocTotals are the per-document figures used for batch-level logging.
// The durable output is the per-speaker accumulator.
type DocTotals struct {
	Duration float64
	Tokens   int
}

// Aggregator folds sentence records into a per-speaker accumulator whose
// lifetime spans the whole batch run.
type Aggregator struct {
	stats *model.SpeakerStats
}

// NewAggregator creates an aggregator with a fresh accumulator.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: model.NewSpeakerStats()}
}

// Stats exposes the accumulated per-speaker state.
func (a *Aggregator) Stats() *model.SpeakerStats {
	return a.stats
}

// SortRecords orders sentence records by (language, start time), the order
// the aggregation contract requires.
func SortRecords(records []model.SentenceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Language != records[j].Language {
			return records[i].Language < records[j].Language
		}
		return records[i].Span.Start < records[j].Span.Start
	})
}

// AddDocument aggregates one document's sentence records. Records are
// sorted by (language, start time); all but the last are tokenized and
// accumulated, while the last one only closes the document time fence.
// The returned totals feed batch logging.
func (a *Aggregator) AddDocument(records []model.SentenceRecord) DocTotals {
	if len(records) == 0 {
		return DocTotals{}
	}
	SortRecords(records)

	totals := DocTotals{}
	for i := 0; i < len(records)-1; i++ {
		text := NormalizeSentence(records[i].Text)
		if utf8.RuneCountInString(text) <= 1 {
			continue
		}
		speaker := records[i].Speaker
		a.stats.Touch(speaker)
		for _, token := range Tokenize(text) {
			totals.Tokens++
			a.stats.AddToken(speaker, token)
		}
		a.stats.AddDuration(speaker, records[i].Span.Duration())
	}
	totals.Duration = records[len(records)-1].Span.End - records[0].Span.Start
	return totals
}
