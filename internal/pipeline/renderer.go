package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lingtools/elanstats/internal/model"
)

// Output artifact names, consumed by the dashboard.
const (
	DurationFile = "duration_by_speaker.json"
	TokensFile   = "tokens_by_speaker.json"
)

// Renderer writes the batch output artifacts into the stats directory.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer targeting dir, creating it if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create stats directory: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

// WriteStats renders the per-speaker duration and token-frequency
// documents. The total sound duration goes into the duration document
// under the reserved key.
func (r *Renderer) WriteStats(s *model.SpeakerStats, soundDuration float64) error {
	durations := make(map[string]float64, len(s.Durations)+1)
	for speaker, d := range s.Durations {
		durations[speaker] = d
	}
	durations[model.TotalSoundDurationKey] = soundDuration

	if err := writeJSON(filepath.Join(r.dir, DurationFile), durations); err != nil {
		return fmt.Errorf("write durations: %w", err)
	}
	if err := writeJSON(filepath.Join(r.dir, TokensFile), s.Tokens); err != nil {
		return fmt.Errorf("write token frequencies: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
