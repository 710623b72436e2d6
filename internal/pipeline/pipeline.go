// Package pipeline orchestrates the complete run: load the statement,
// match labels, redistribute allocations, classify and aggregate. Session
// state never mutates mid-run: each phase consumes the previous phase's
// output and produces new immutable structures.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ifrs-tools/restate/internal/cache"
	"github.com/ifrs-tools/restate/internal/classify"
	"github.com/ifrs-tools/restate/internal/loader"
	"github.com/ifrs-tools/restate/internal/match"
	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/normalize"
	"github.com/ifrs-tools/restate/internal/report"
	"github.com/ifrs-tools/restate/internal/vocab"
)

// Inputs carries the user-declared session inputs for one run.
type Inputs struct {
	Splits    []model.AllocationSplit
	Policies  []model.PolicyChoice
	Overrides map[string]string // normalized source label -> canonical name
}

// Pipeline wires the engine components together for one configuration.
type Pipeline struct {
	cfg     *model.Config
	vocab   *vocab.Vocabulary
	matcher *match.Matcher
	profile model.EntityProfile
}

// NewPipeline creates a pipeline from configuration: loads the vocabulary
// (file or built-in), validates the entity profile and builds the matcher.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	v := vocab.Default()
	if cfg.Vocabulary.Path != "" {
		loaded, err := vocab.Load(cfg.Vocabulary.Path)
		if err != nil {
			return nil, err
		}
		v = loaded
	}

	profile, err := model.ParseProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	var opts []match.Option
	if cfg.Cache.Enabled {
		mem := cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		opts = append(opts, match.WithCache(mem, cfg.Cache.TTL))
	}
	matcher, err := match.New(v, opts...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:     cfg,
		vocab:   v,
		matcher: matcher,
		profile: profile,
	}, nil
}

// Vocabulary exposes the loaded vocabulary (for the vocab command).
func (p *Pipeline) Vocabulary() *vocab.Vocabulary {
	return p.vocab
}

// Matcher exposes the matcher (for the match command).
func (p *Pipeline) Matcher() *match.Matcher {
	return p.matcher
}

// Process runs the full pipeline over one statement file.
func (p *Pipeline) Process(ctx context.Context, path string, in Inputs) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, err := loader.ReadStatement(path)
	if err != nil {
		return nil, fmt.Errorf("load statement: %w", err)
	}
	return p.ProcessStatement(ctx, st, in)
}

// ProcessStatement runs matching, allocation and aggregation over an
// already-materialized statement.
func (p *Pipeline) ProcessStatement(ctx context.Context, st model.Statement, in Inputs) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mappings := p.matcher.MatchStatement(st)
	mappings = applyOverrides(mappings, in.Overrides)

	resolver := classify.NewResolver(p.vocab, p.profile, in.Policies)
	agg := report.NewAggregator(p.vocab, resolver, p.cfg.Report)
	rep := agg.Build(st, mappings, in.Splits)

	rep.ID = uuid.NewString()
	rep.GeneratedAt = time.Now().UTC()
	rep.SourceFile = st.File
	rep.Mappings = mappings
	rep.Warnings = append(rep.Warnings, p.reviewWarnings(mappings)...)

	return rep, nil
}

// applyOverrides replaces matcher results with explicit user choices. An
// override is authoritative: confidence 100, never re-scored.
func applyOverrides(mappings []model.Mapping, overrides map[string]string) []model.Mapping {
	if len(overrides) == 0 {
		return mappings
	}
	out := make([]model.Mapping, len(mappings))
	copy(out, mappings)
	for i := range out {
		canonical, ok := overrides[normalize.Label(out[i].Source.Label)]
		if !ok {
			continue
		}
		out[i].Canonical = canonical
		out[i].Confidence = 100
		out[i].Subtotal = false
		out[i].Overridden = true
		out[i].Rule = "override"
	}
	return out
}

// reviewWarnings flags matches below the review threshold. A low score is
// not an error, it is the signal to put the row in front of a human.
func (p *Pipeline) reviewWarnings(mappings []model.Mapping) []model.Warning {
	var warnings []model.Warning
	for _, mp := range mappings {
		if mp.Subtotal || mp.Overridden || mp.Confidence >= p.cfg.Matching.MinConfidence {
			continue
		}
		warnings = append(warnings, model.Warning{
			Type:        model.WarningLowConfidence,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%q matched %q with confidence %d (threshold %d)", mp.Source.Label, mp.Canonical, mp.Confidence, p.cfg.Matching.MinConfidence),
			Data: map[string]interface{}{
				"label":       mp.Source.Label,
				"canonical":   mp.Canonical,
				"confidence":  mp.Confidence,
				"suggestions": p.matcher.Suggest(mp.Source.Label, p.cfg.Matching.Suggestions),
			},
		})
	}
	return warnings
}
