// Package creation drives the generate-review-save flow for one working
// session.
//
// A Flow holds at most one artifact at a time. Generating replaces it,
// saving persists it without discarding it, and a failed save leaves it in
// place so the user can retry or copy the text out. The flow exposes an
// observable state snapshot for the HTTP and CLI surfaces.
package creation

import (
	"context"
	"errors"
	"sync"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/generate"
	"github.com/eduforge/eduforge/internal/log"
)

// ErrNothingToSave indicates Save was called with no artifact in hand.
var ErrNothingToSave = errors.New("no artifact to save")

// ErrNothingToRetry indicates Retry was called before any generation.
var ErrNothingToRetry = errors.New("no previous generation to retry")

// State is an observable snapshot of the flow.
type State struct {
	Generating bool
	Err        error
	Artifact   *generate.Artifact
}

// Config contains all required parameters for a Flow.
type Config struct {
	Generator *generate.Generator
	Store     *content.Store
	Logger    log.Logger
}

func (cfg Config) validate() error {
	if cfg.Generator == nil {
		return errors.New("generator is required")
	}
	if cfg.Store == nil {
		return errors.New("content store is required")
	}
	return nil
}

// Flow owns one generation session: the in-flight flag, the last error, the
// current artifact, and the request that produced it.
type Flow struct {
	gen    *generate.Generator
	store  *content.Store
	logger log.Logger

	mu       sync.Mutex
	running  bool
	err      error
	artifact *generate.Artifact
	rerun    func(context.Context) (generate.Artifact, error)
	record   content.Record
}

// NewFlow creates an idle flow.
func NewFlow(cfg Config) (*Flow, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Flow{gen: cfg.Generator, store: cfg.Store, logger: logger}, nil
}

// LessonPlan generates a lesson plan and makes it the current artifact.
func (f *Flow) LessonPlan(ctx context.Context, req generate.LessonPlanRequest) (generate.Artifact, error) {
	return f.run(ctx,
		func(ctx context.Context) (generate.Artifact, error) { return f.gen.LessonPlan(ctx, req) },
		recordFor(req.Curriculum, map[string]any{
			"duration":        req.Duration,
			"learning_styles": req.LearningStyles,
		}),
	)
}

// Quiz generates a quiz and makes it the current artifact.
func (f *Flow) Quiz(ctx context.Context, req generate.QuizRequest) (generate.Artifact, error) {
	return f.run(ctx,
		func(ctx context.Context) (generate.Artifact, error) { return f.gen.Quiz(ctx, req) },
		recordFor(req.Curriculum, map[string]any{
			"question_count":   req.QuestionCount,
			"difficulty_level": req.DifficultyLevel,
			"taxonomy_type":    req.TaxonomyType,
			"taxonomy_levels":  req.TaxonomyLevels,
		}),
	)
}

// Worksheet generates a worksheet and makes it the current artifact.
func (f *Flow) Worksheet(ctx context.Context, req generate.WorksheetRequest) (generate.Artifact, error) {
	return f.run(ctx,
		func(ctx context.Context) (generate.Artifact, error) { return f.gen.Worksheet(ctx, req) },
		recordFor(req.Curriculum, map[string]any{
			"question_count":     req.QuestionCount,
			"difficulty_level":   req.DifficultyLevel,
			"include_answer_key": req.IncludeAnswerKey,
		}),
	)
}

// Presentation generates a presentation outline and makes it the current
// artifact.
func (f *Flow) Presentation(ctx context.Context, req generate.PresentationRequest) (generate.Artifact, error) {
	return f.run(ctx,
		func(ctx context.Context) (generate.Artifact, error) { return f.gen.Presentation(ctx, req) },
		recordFor(req.Curriculum, map[string]any{
			"slide_count":        req.SlideCount,
			"visual_preference":  req.VisualPreference,
			"include_activities": req.IncludeActivities,
			"include_assessment": req.IncludeAssessment,
		}),
	)
}

// Assessment generates an assessment and makes it the current artifact.
func (f *Flow) Assessment(ctx context.Context, req generate.AssessmentRequest) (generate.Artifact, error) {
	return f.run(ctx,
		func(ctx context.Context) (generate.Artifact, error) { return f.gen.Assessment(ctx, req) },
		recordFor(req.Curriculum, map[string]any{
			"question_count":  req.QuestionCount,
			"duration":        req.Duration,
			"assessment_type": req.AssessmentType,
		}),
	)
}

// recordFor maps curriculum context onto the persisted record shape. The
// chapter column holds the topic.
func recordFor(c generate.Curriculum, metadata map[string]any) content.Record {
	return content.Record{
		Subject:  c.Subject,
		Grade:    c.Grade,
		Chapter:  c.Topic,
		Metadata: metadata,
	}
}

// run executes one generation, remembering it for Retry. A failed
// generation clears the current artifact; the session never shows a
// document that did not fully assemble.
func (f *Flow) run(ctx context.Context, gen func(context.Context) (generate.Artifact, error), rec content.Record) (generate.Artifact, error) {
	f.mu.Lock()
	f.running = true
	f.err = nil
	f.rerun = gen
	f.record = rec
	f.mu.Unlock()

	artifact, err := gen(ctx)

	f.mu.Lock()
	f.running = false
	if err != nil {
		f.err = err
		f.artifact = nil
	} else {
		f.artifact = &artifact
	}
	f.mu.Unlock()

	return artifact, err
}

// Retry re-runs the most recent generation request.
func (f *Flow) Retry(ctx context.Context) (generate.Artifact, error) {
	f.mu.Lock()
	gen := f.rerun
	rec := f.record
	f.mu.Unlock()

	if gen == nil {
		return generate.Artifact{}, ErrNothingToRetry
	}
	return f.run(ctx, gen, rec)
}

// Save persists the current artifact through the content store. The
// artifact stays current whether or not the save succeeds; a failed save is
// observable via State and can simply be retried.
func (f *Flow) Save(ctx context.Context) error {
	f.mu.Lock()
	artifact := f.artifact
	rec := f.record
	f.mu.Unlock()

	if artifact == nil {
		return ErrNothingToSave
	}

	rec.Type = artifact.Type
	rec.Content = artifact.Text
	if err := f.store.Save(ctx, rec); err != nil {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.err = nil
	f.mu.Unlock()
	f.logger.Info("artifact saved", "type", artifact.Type, "subject", rec.Subject)
	return nil
}

// State returns an observable snapshot of the flow. The artifact pointer
// refers to an immutable value.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Generating: f.running, Err: f.err, Artifact: f.artifact}
}
