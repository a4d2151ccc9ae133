package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/eduforge/eduforge/internal/app"
	"github.com/eduforge/eduforge/internal/auth"
	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/creation"
	"github.com/eduforge/eduforge/internal/generate"
)

// generateFlags holds the flag values shared by every document type.
type generateFlags struct {
	subject    string
	grade      string
	topic      string
	duration   string
	styles     string
	questions  int
	difficulty string
	taxonomy   string
	levels     string
	answerKey  bool
	slides     int
	visual     string
	activities bool
	assessment bool
	kind       string
	extra      string
	save       bool
}

// runGenerate generates one document from the terminal and prints it.
func runGenerate() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: eduforge generate <lesson-plan|quiz|worksheet|presentation|assessment> [flags]")
	}
	docType := os.Args[2]

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var f generateFlags
	fs.StringVar(&f.subject, "subject", "", "Subject (required)")
	fs.StringVar(&f.grade, "grade", "", "Grade (required)")
	fs.StringVar(&f.topic, "topic", "", "Topic (required)")
	fs.StringVar(&f.duration, "duration", "45 minutes", "Lesson or assessment duration")
	fs.StringVar(&f.styles, "styles", "Visual", "Comma-separated learning styles")
	fs.IntVar(&f.questions, "questions", 10, "Question count")
	fs.StringVar(&f.difficulty, "difficulty", "Medium", "Difficulty level")
	fs.StringVar(&f.taxonomy, "taxonomy", "Bloom's Taxonomy", "Question taxonomy")
	fs.StringVar(&f.levels, "levels", "Remember,Understand,Apply", "Comma-separated taxonomy levels")
	fs.BoolVar(&f.answerKey, "answer-key", true, "Include an answer key (worksheet)")
	fs.IntVar(&f.slides, "slides", 10, "Slide count (presentation)")
	fs.StringVar(&f.visual, "visual", "Balanced", "Visual preference (presentation)")
	fs.BoolVar(&f.activities, "activities", false, "Include activity slides (presentation)")
	fs.BoolVar(&f.assessment, "assessment", false, "Include assessment slides (presentation)")
	fs.StringVar(&f.kind, "kind", "Unit Test", "Assessment type")
	fs.StringVar(&f.extra, "instructions", "", "Additional instructions")
	fs.BoolVar(&f.save, "save", false, "Persist the document after generating")

	if err := fs.Parse(os.Args[3:]); err != nil {
		return fmt.Errorf("parsing generate flags: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	a, err := app.Setup(ctx, cfg, cliAuthProvider())
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	flow, err := a.NewFlow()
	if err != nil {
		return fmt.Errorf("creating flow: %w", err)
	}

	artifact, err := runFlowGeneration(ctx, flow, docType, f)
	if err != nil {
		return err
	}

	fmt.Println(artifact.Text)

	if f.save {
		if err := flow.Save(ctx); err != nil {
			return fmt.Errorf("saving document: %w", err)
		}
		fmt.Fprintln(os.Stderr, "saved")
	}
	return nil
}

func runFlowGeneration(ctx context.Context, flow *creation.Flow, docType string, f generateFlags) (generate.Artifact, error) {
	curriculum := generate.Curriculum{Subject: f.subject, Grade: f.grade, Topic: f.topic}

	switch docType {
	case "lesson-plan":
		return flow.LessonPlan(ctx, generate.LessonPlanRequest{
			Curriculum:             curriculum,
			Duration:               f.duration,
			LearningStyles:         splitList(f.styles),
			AdditionalInstructions: f.extra,
		})
	case "quiz":
		return flow.Quiz(ctx, generate.QuizRequest{
			Curriculum:      curriculum,
			QuestionCount:   f.questions,
			DifficultyLevel: f.difficulty,
			TaxonomyType:    f.taxonomy,
			TaxonomyLevels:  splitList(f.levels),
		})
	case "worksheet":
		return flow.Worksheet(ctx, generate.WorksheetRequest{
			Curriculum:             curriculum,
			QuestionCount:          f.questions,
			DifficultyLevel:        f.difficulty,
			IncludeAnswerKey:       f.answerKey,
			AdditionalInstructions: f.extra,
		})
	case "presentation":
		return flow.Presentation(ctx, generate.PresentationRequest{
			Curriculum:             curriculum,
			SlideCount:             f.slides,
			VisualPreference:       f.visual,
			IncludeActivities:      f.activities,
			IncludeAssessment:      f.assessment,
			AdditionalInstructions: f.extra,
		})
	case "assessment":
		return flow.Assessment(ctx, generate.AssessmentRequest{
			Curriculum:             curriculum,
			QuestionCount:          f.questions,
			Duration:               f.duration,
			AssessmentType:         f.kind,
			AdditionalInstructions: f.extra,
		})
	default:
		return generate.Artifact{}, fmt.Errorf("unknown document type: %s", docType)
	}
}

// cliAuthProvider resolves the owner identity for CLI saves from
// EDUFORGE_USER_ID. An unset or malformed value yields a provider that
// fails with an unauthenticated error on the first persistence operation,
// so generation without saving still works.
func cliAuthProvider() *auth.StaticProvider {
	raw := os.Getenv("EDUFORGE_USER_ID")
	id, err := uuid.Parse(raw)
	if raw == "" || err != nil {
		return &auth.StaticProvider{}
	}
	return &auth.StaticProvider{Identity: auth.Identity{ID: id}}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
