package generate

import (
	"context"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/llm"
)

// Worksheet generates a practice worksheet in a single call.
func (g *Generator) Worksheet(ctx context.Context, req WorksheetRequest) (Artifact, error) {
	if err := req.validate(); err != nil {
		return Artifact{}, err
	}

	conv := llm.NewConversation(worksheetSystem, worksheetPrompt(req))
	start := time.Now()
	text, err := g.generateOne(ctx, conv, llm.CallOptions{}, "worksheet")
	if err != nil {
		return Artifact{}, err
	}
	g.logger.Info("worksheet generated",
		"subject", req.Subject,
		"grade", req.Grade,
		"questions", req.QuestionCount,
		"elapsed", time.Since(start),
	)

	return Artifact{Type: content.TypeWorksheet, Text: text}, nil
}
