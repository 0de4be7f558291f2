// Package web serves the corpus statistics dashboard: a read-and-format
// layer over the JSON artifacts the batch run produces.
package web

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lingtools/elanstats/internal/model"
	"github.com/lingtools/elanstats/internal/pipeline"
)

// MaxFreqTokens caps the common frequency list shown per corpus.
const MaxFreqTokens = 100

// TokenFreq is one entry of the common frequency list.
type TokenFreq struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// CorpusView is the fully computed dashboard state for one corpus.
type CorpusView struct {
	Name    string `json:"name"`
	Missing bool   `json:"missing"` // stats directory absent

	Speakers   []string `json:"speakers"`
	Informants []string `json:"informants"`

	TotalSoundDur    float64 `json:"total_sound_dur"`
	TotalSoundDurStr string  `json:"total_sound_dur_str"`

	DurBySpeaker    map[string]float64 `json:"dur_by_speaker"`
	DurBySpeakerStr map[string]string  `json:"dur_by_speaker_str"`
	TotalDur        float64            `json:"total_dur"`
	TotalDurStr     string             `json:"total_dur_str"`
	InfDur          float64            `json:"inf_dur"`
	InfDurStr       string             `json:"inf_dur_str"`

	TokBySpeaker map[string]int `json:"total_tok_by_speaker"`
	TotalTok     int            `json:"total_tok"`
	InfTok       int            `json:"inf_tok"`

	// Informant shares in percent of the corpus totals.
	InfDurShare float64 `json:"inf_dur_share"`
	InfTokShare float64 `json:"inf_tok_share"`

	FreqTokens []TokenFreq `json:"freq_tokens"`
}

// IsInterviewer determines from the speaker code whether the speaker is an
// interviewer rather than an informant.
func IsInterviewer(speaker string) bool {
	return strings.HasPrefix(strings.ToLower(speaker), "interviewer")
}

// LoadCorpus reads one corpus' stats artifacts and computes its dashboard
// figures. A missing stats directory yields a marked placeholder view
// rather than an error, so one broken corpus never takes down the page.
func LoadCorpus(entry model.CorpusEntry) *CorpusView {
	view := &CorpusView{
		Name:            entry.Name,
		DurBySpeaker:    map[string]float64{},
		DurBySpeakerStr: map[string]string{},
		TokBySpeaker:    map[string]int{},
	}
	if _, err := os.Stat(entry.StatsDir); err != nil {
		view.Name = entry.Name + " (FOLDER DOES NOT EXIST!)"
		view.Missing = true
		return view
	}

	durations := map[string]float64{}
	tokens := map[string]map[string]int{}
	if err := readJSON(filepath.Join(entry.StatsDir, pipeline.DurationFile), &durations); err != nil {
		view.Name = entry.Name + " (UNREADABLE STATS!)"
		view.Missing = true
		return view
	}
	if err := readJSON(filepath.Join(entry.StatsDir, pipeline.TokensFile), &tokens); err != nil {
		view.Name = entry.Name + " (UNREADABLE STATS!)"
		view.Missing = true
		return view
	}

	if total, ok := durations[model.TotalSoundDurationKey]; ok {
		view.TotalSoundDur = total
		view.TotalSoundDurStr = model.FormatDuration(total)
		delete(durations, model.TotalSoundDurationKey)
	}

	for speaker := range durations {
		if _, ok := tokens[speaker]; ok {
			view.Speakers = append(view.Speakers, speaker)
			if !IsInterviewer(speaker) {
				view.Informants = append(view.Informants, speaker)
			}
		}
	}
	sort.Strings(view.Speakers)
	sort.Strings(view.Informants)

	for speaker, dur := range durations {
		view.DurBySpeaker[speaker] = dur
		view.DurBySpeakerStr[speaker] = model.FormatDuration(dur)
		view.TotalDur += dur
		if !IsInterviewer(speaker) {
			view.InfDur += dur
		}
	}

	freq := map[string]int{}
	for speaker, counts := range tokens {
		total := 0
		for token, n := range counts {
			total += n
			freq[token] += n
		}
		view.TokBySpeaker[speaker] = total
		view.TotalTok += total
		if !IsInterviewer(speaker) {
			view.InfTok += total
		}
	}

	view.FreqTokens = topTokens(freq, MaxFreqTokens)
	view.TotalDurStr = model.FormatDuration(view.TotalDur)
	view.InfDurStr = model.FormatDuration(view.InfDur)
	if view.TotalDur > 0 {
		view.InfDurShare = 100 * view.InfDur / view.TotalDur
	}
	if view.TotalTok > 0 {
		view.InfTokShare = 100 * float64(view.InfTok) / float64(view.TotalTok)
	}
	return view
}

// topTokens orders the merged frequency list by descending count, ties
// broken alphabetically, capped at limit.
func topTokens(freq map[string]int, limit int) []TokenFreq {
	out := make([]TokenFreq, 0, len(freq))
	for token, count := range freq {
		out = append(out, TokenFreq{Token: token, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
