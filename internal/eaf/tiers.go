package eaf

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lingtools/elanstats/internal/model"
)

// rule is one compiled (pattern, outcome) pair.
type rule struct {
	rx      *regexp.Regexp
	outcome string
}

// Ruleset holds the compiled tier-matching configuration. It is immutable
// and safe for concurrent use; per-document state lives in Resolver.
type Ruleset struct {
	main      []*regexp.Regexp
	aligned   []*regexp.Regexp
	languages []rule
	analysis  []rule
}

// anchorPattern wraps a pattern with ^...$ unless the caller already
// anchored it.
func anchorPattern(p string) string {
	if !strings.HasPrefix(p, "^") {
		p = "^" + p
	}
	if !strings.HasSuffix(p, "$") {
		p += "$"
	}
	return p
}

func compilePatterns(patterns []string, what string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		rx, err := regexp.Compile(anchorPattern(p))
		if err != nil {
			return nil, fmt.Errorf("%s pattern %q: %w", what, p, err)
		}
		out = append(out, rx)
	}
	return out, nil
}

func compileRules(pairs []model.TierRule, what string) ([]rule, error) {
	out := make([]rule, 0, len(pairs))
	for _, pair := range pairs {
		rx, err := regexp.Compile(anchorPattern(pair.Pattern))
		if err != nil {
			return nil, fmt.Errorf("%s pattern %q: %w", what, pair.Pattern, err)
		}
		out = append(out, rule{rx: rx, outcome: pair.Value})
	}
	return out, nil
}

// CompileRuleset validates and compiles the corpus tier configuration.
// An invalid pattern rejects the whole configuration up front rather than
// being silently skipped at match time.
func CompileRuleset(cfg model.CorpusConfig) (*Ruleset, error) {
	main, err := compilePatterns(cfg.MainTiers, "main tier")
	if err != nil {
		return nil, err
	}
	aligned, err := compilePatterns(cfg.AlignedTiers, "aligned tier")
	if err != nil {
		return nil, err
	}
	languages, err := compileRules(cfg.TierLanguages, "tier language")
	if err != nil {
		return nil, err
	}
	analysis, err := compileRules(cfg.AnalysisTiers, "analysis tier")
	if err != nil {
		return nil, err
	}
	return &Ruleset{
		main:      main,
		aligned:   aligned,
		languages: languages,
		analysis:  analysis,
	}, nil
}

// HasAligned reports whether any aligned-tier patterns are configured.
// Paragraph alignment identifiers are only assigned when they are.
func (r *Ruleset) HasAligned() bool {
	return len(r.aligned) > 0
}

// matchesAny matches a tier's identifier and then its type reference
// against an ordered pattern list.
func matchesAny(patterns []*regexp.Regexp, tier *Tier) bool {
	for _, rx := range patterns {
		if rx.MatchString(tier.ID) {
			return true
		}
		if tier.TypeRef != "" && rx.MatchString(tier.TypeRef) {
			return true
		}
	}
	return false
}

// IsMain reports whether the tier is a primary annotation track.
func (r *Ruleset) IsMain(tier *Tier) bool {
	return matchesAny(r.main, tier)
}

// IsAligned reports whether the tier is a dependent annotation track.
func (r *Ruleset) IsAligned(tier *Tier) bool {
	return matchesAny(r.aligned, tier)
}

// Language resolves the tier's language: each rule is tried against the
// declared type reference first, then the rules are retried against the
// tier identifier. First match wins; an empty result means the tier is not
// linguistically relevant and must be skipped.
func (r *Ruleset) Language(tier *Tier) string {
	if tier.TypeRef != "" {
		for _, rule := range r.languages {
			if rule.rx.MatchString(tier.TypeRef) {
				return rule.outcome
			}
		}
	}
	for _, rule := range r.languages {
		if rule.rx.MatchString(tier.ID) {
			return rule.outcome
		}
	}
	return ""
}

// AnalysisType returns the semantic tier type (word, gloss, ...) of an
// analysis tier, or "" when the tier is not an analysis tier.
func (r *Ruleset) AnalysisType(tier *Tier) string {
	for _, rule := range r.analysis {
		if rule.rx.MatchString(tier.ID) {
			return rule.outcome
		}
		if tier.TypeRef != "" && rule.rx.MatchString(tier.TypeRef) {
			return rule.outcome
		}
	}
	return ""
}

// Resolver carries per-document speaker state on top of a shared Ruleset.
type Resolver struct {
	*Ruleset
	participants map[string]string // main tier id -> speaker
}

// NewResolver creates a resolver for one document.
func NewResolver(rs *Ruleset) *Resolver {
	return &Resolver{
		Ruleset:      rs,
		participants: make(map[string]string),
	}
}

// Speaker resolves the tier's speaker. A main tier records its own
// participant attribute for later inheritance; an aligned tier inherits
// the speaker of its declared parent tier, falling back to its own
// participant attribute. An empty result means the speaker is unknown.
func (r *Resolver) Speaker(tier *Tier, aligned bool) string {
	if !aligned && tier.Participant != "" {
		r.participants[tier.ID] = tier.Participant
		return tier.Participant
	}
	if tier.ParentRef != "" {
		if speaker, ok := r.participants[tier.ParentRef]; ok {
			return speaker
		}
	}
	return tier.Participant
}
