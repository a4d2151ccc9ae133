package generate

import (
	"context"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/llm"
)

// Quiz generates a multiple-choice quiz in a single call.
func (g *Generator) Quiz(ctx context.Context, req QuizRequest) (Artifact, error) {
	if err := req.validate(); err != nil {
		return Artifact{}, err
	}

	conv := llm.NewConversation(quizSystem, quizPrompt(req))
	start := time.Now()
	text, err := g.generateOne(ctx, conv, llm.CallOptions{}, "quiz")
	if err != nil {
		return Artifact{}, err
	}
	g.logger.Info("quiz generated",
		"subject", req.Subject,
		"grade", req.Grade,
		"questions", req.QuestionCount,
		"elapsed", time.Since(start),
	)

	return Artifact{Type: content.TypeQuiz, Text: text}, nil
}
