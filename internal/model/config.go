package model

import "time"

// TierRule maps an anchored regex pattern to an outcome (a language tag or a
// semantic tier type). Rules are evaluated in configuration order,
// first match wins.
type TierRule struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern" json:"pattern"`
	Value   string `mapstructure:"value" yaml:"value" json:"value"`
}

// CorpusConfig describes how tiers of an annotation document map to
// languages, speakers and analysis levels.
type CorpusConfig struct {
	SourceExt     string     `mapstructure:"source_ext" yaml:"source_ext"`
	MainTiers     []string   `mapstructure:"main_tiers" yaml:"main_tiers"`
	AlignedTiers  []string   `mapstructure:"aligned_tiers" yaml:"aligned_tiers"`
	TierLanguages []TierRule `mapstructure:"tier_languages" yaml:"tier_languages"`
	AnalysisTiers []TierRule `mapstructure:"analysis_tiers" yaml:"analysis_tiers"`
}

// PathsConfig holds filesystem locations used by a batch run.
type PathsConfig struct {
	Sound string `mapstructure:"sound" yaml:"sound"`
	Stats string `mapstructure:"stats" yaml:"stats"`
}

// BatchConfig controls the batch driver.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CorpusEntry points the dashboard at one corpus' stats directory.
type CorpusEntry struct {
	Name     string `mapstructure:"name" yaml:"name" json:"name"`
	StatsDir string `mapstructure:"stats_dir" yaml:"stats_dir" json:"stats_dir"`
}

// WebConfig configures the statistics dashboard.
type WebConfig struct {
	Listen        string        `mapstructure:"listen" yaml:"listen"`
	DefaultLocale string        `mapstructure:"default_locale" yaml:"default_locale"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	Corpora       []CorpusEntry `mapstructure:"corpora" yaml:"corpora"`
}

// Config is the complete elanstats configuration.
type Config struct {
	Corpus CorpusConfig `mapstructure:"corpus" yaml:"corpus"`
	Paths  PathsConfig  `mapstructure:"paths" yaml:"paths"`
	Batch  BatchConfig  `mapstructure:"batch" yaml:"batch"`
	Web    WebConfig    `mapstructure:"web" yaml:"web"`
}

// DefaultConfig returns the built-in configuration: a single Russian
// transcription tier and no aligned or analysis tiers.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			SourceExt: "eaf",
			MainTiers: []string{"transcription"},
			TierLanguages: []TierRule{
				{Pattern: "transcription", Value: "russian"},
			},
		},
		Paths: PathsConfig{
			Sound: "sound",
			Stats: "stats",
		},
		Batch: BatchConfig{
			Workers: 1,
		},
		Web: WebConfig{
			Listen:        ":8080",
			DefaultLocale: "ru",
			CacheTTL:      5 * time.Minute,
		},
	}
}
