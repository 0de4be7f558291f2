package model

import "fmt"

// TotalSoundDurationKey is the reserved speaker key under which the total
// duration of the corpus sound files is stored in the per-speaker
// duration document.
const TotalSoundDurationKey = "#TOTAL_SOUND_DURATION"

// SpeakerStats accumulates per-speaker token frequencies and transcribed
// durations. One instance lives for a whole batch run; counts only grow.
// Not safe for concurrent use: parallel callers keep their own instance
// and Merge at the end.
type SpeakerStats struct {
	Tokens    map[string]map[string]int `json:"tokens"`
	Durations map[string]float64        `json:"durations"`
}

// NewSpeakerStats creates an empty accumulator.
func NewSpeakerStats() *SpeakerStats {
	return &SpeakerStats{
		Tokens:    make(map[string]map[string]int),
		Durations: make(map[string]float64),
	}
}

// Touch makes sure speaker is present in both maps, so speakers whose
// sentences produce no tokens still show up in the output documents.
func (s *SpeakerStats) Touch(speaker string) {
	if _, ok := s.Tokens[speaker]; !ok {
		s.Tokens[speaker] = make(map[string]int)
	}
	if _, ok := s.Durations[speaker]; !ok {
		s.Durations[speaker] = 0
	}
}

// AddToken increments the frequency of token for speaker.
func (s *SpeakerStats) AddToken(speaker, token string) {
	freq, ok := s.Tokens[speaker]
	if !ok {
		freq = make(map[string]int)
		s.Tokens[speaker] = freq
	}
	freq[token]++
}

// AddDuration adds seconds of transcribed time to speaker.
func (s *SpeakerStats) AddDuration(speaker string, seconds float64) {
	s.Durations[speaker] += seconds
}

// Merge folds other into s. Merging is commutative and associative, so
// partial accumulators from parallel workers can be combined in any order.
func (s *SpeakerStats) Merge(other *SpeakerStats) {
	if other == nil {
		return
	}
	for speaker, freq := range other.Tokens {
		dst, ok := s.Tokens[speaker]
		if !ok {
			dst = make(map[string]int)
			s.Tokens[speaker] = dst
		}
		for token, n := range freq {
			dst[token] += n
		}
	}
	for speaker, d := range other.Durations {
		s.Durations[speaker] += d
	}
}

// TokenCount returns the total number of token occurrences across all
// speakers.
func (s *SpeakerStats) TokenCount() int {
	total := 0
	for _, freq := range s.Tokens {
		for _, n := range freq {
			total += n
		}
	}
	return total
}

// FormatDuration presents a duration in seconds as HH:MM:SS.
func FormatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) - hours*3600) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
