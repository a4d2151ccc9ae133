package generate

import (
	"context"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/llm"
)

const lessonPlanBanner = "LESSON PLAN"

// The four lesson plan sections, in the order they appear in the assembled
// document regardless of which call finishes first.
const (
	sectionObjectives = "objectives"
	sectionMaterials  = "materials"
	sectionActivities = "activities"
	sectionAssessment = "assessment"
)

// LessonPlan generates a four-section lesson plan. The sections are
// produced by concurrent generation calls and assembled under fixed
// headings; if any section fails, no plan is returned.
func (g *Generator) LessonPlan(ctx context.Context, req LessonPlanRequest) (Artifact, error) {
	if err := req.validate(); err != nil {
		return Artifact{}, err
	}

	sections := []section{
		{name: sectionObjectives, heading: "LEARNING OBJECTIVES", conv: llm.NewConversation(lessonPlanSystem, objectivesPrompt(req))},
		{name: sectionMaterials, heading: "MATERIALS AND PREPARATION", conv: llm.NewConversation(lessonPlanSystem, materialsPrompt(req))},
		{name: sectionActivities, heading: "LEARNING ACTIVITIES", conv: llm.NewConversation(lessonPlanSystem, activitiesPrompt(req))},
		{name: sectionAssessment, heading: "ASSESSMENT AND CLOSURE", conv: llm.NewConversation(lessonPlanSystem, assessmentClosurePrompt(req))},
	}
	opts := llm.CallOptions{Timeout: sectionTimeout}

	start := time.Now()
	texts, err := g.generateSections(ctx, sections, opts)
	if err != nil {
		return Artifact{}, err
	}
	g.logger.Info("lesson plan generated",
		"subject", req.Subject,
		"grade", req.Grade,
		"sections", len(sections),
		"elapsed", time.Since(start),
	)

	return Artifact{
		Type: content.TypeLessonPlan,
		Text: assemble(lessonPlanBanner, sections, texts),
	}, nil
}
