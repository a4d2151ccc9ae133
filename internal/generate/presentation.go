package generate

import (
	"context"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/fault"
	"github.com/eduforge/eduforge/internal/llm"
)

// Slide count bounds accepted by presentation requests.
const (
	MinSlideCount = 5
	MaxSlideCount = 30
)

// Presentation generates a slide deck outline in a single call.
func (g *Generator) Presentation(ctx context.Context, req PresentationRequest) (Artifact, error) {
	if err := req.validate(); err != nil {
		return Artifact{}, err
	}
	if req.SlideCount < MinSlideCount || req.SlideCount > MaxSlideCount {
		return Artifact{}, fault.New(fault.KindArtifactGeneration, "presentation slide count must be between 5 and 30")
	}

	conv := llm.NewConversation(presentationSystem, presentationPrompt(req))
	start := time.Now()
	text, err := g.generateOne(ctx, conv, llm.CallOptions{}, "presentation")
	if err != nil {
		return Artifact{}, err
	}
	g.logger.Info("presentation generated",
		"subject", req.Subject,
		"grade", req.Grade,
		"slides", req.SlideCount,
		"elapsed", time.Since(start),
	)

	return Artifact{Type: content.TypePresentation, Text: text}, nil
}
