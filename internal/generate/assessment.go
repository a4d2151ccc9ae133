package generate

import (
	"context"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/llm"
)

// Assessment generates a formal assessment paper in a single call.
func (g *Generator) Assessment(ctx context.Context, req AssessmentRequest) (Artifact, error) {
	if err := req.validate(); err != nil {
		return Artifact{}, err
	}

	conv := llm.NewConversation(assessmentSystem, assessmentPrompt(req))
	start := time.Now()
	text, err := g.generateOne(ctx, conv, llm.CallOptions{}, "assessment")
	if err != nil {
		return Artifact{}, err
	}
	g.logger.Info("assessment generated",
		"subject", req.Subject,
		"grade", req.Grade,
		"questions", req.QuestionCount,
		"elapsed", time.Since(start),
	)

	return Artifact{Type: content.TypeAssessment, Text: text}, nil
}
