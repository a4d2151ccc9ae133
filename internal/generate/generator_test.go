package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/fault"
	"github.com/eduforge/eduforge/internal/llm"
	"github.com/eduforge/eduforge/internal/testutil"
)

func TestNew_RequiresClient(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); err == nil {
		t.Fatal("New() error = nil, want missing client failure")
	}
}

func TestQuiz_SingleCall(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("")
	client.Respond("create a quiz", "Q1. What is photosynthesis?")

	g := newTestGenerator(t, client)
	artifact, err := g.Quiz(context.Background(), QuizRequest{
		Curriculum:      Curriculum{Subject: "Science", Grade: "Grade 6", Topic: "Photosynthesis"},
		QuestionCount:   10,
		DifficultyLevel: "Medium",
		TaxonomyType:    "Bloom's Taxonomy",
		TaxonomyLevels:  []string{"Remember", "Understand", "Apply"},
	})
	if err != nil {
		t.Fatalf("Quiz() error = %v", err)
	}
	if artifact.Type != content.TypeQuiz {
		t.Errorf("artifact type = %q, want %q", artifact.Type, content.TypeQuiz)
	}
	if artifact.Text != "Q1. What is photosynthesis?" {
		t.Errorf("artifact text = %q", artifact.Text)
	}
	if got := len(client.Calls()); got != 1 {
		t.Errorf("generation calls = %d, want 1", got)
	}
}

func TestQuiz_UnclassifiedFailureBecomesArtifactError(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("")
	client.Fail("create a quiz", errors.New("model hiccup"))

	g := newTestGenerator(t, client)
	_, err := g.Quiz(context.Background(), QuizRequest{
		Curriculum:      Curriculum{Subject: "Science", Grade: "Grade 6", Topic: "Photosynthesis"},
		QuestionCount:   5,
		DifficultyLevel: "Easy",
		TaxonomyType:    "Bloom's Taxonomy",
		TaxonomyLevels:  []string{"Remember"},
	})
	if got := fault.KindOf(err); got != fault.KindArtifactGeneration {
		t.Errorf("fault.KindOf(err) = %q, want %q", got, fault.KindArtifactGeneration)
	}
}

func TestQuiz_ClassifiedFailurePassesThrough(t *testing.T) {
	t.Parallel()

	transportErr := fault.New(fault.KindTransport, "generation service call failed")
	client := testutil.NewScriptedClient("")
	client.Fail("create a quiz", transportErr)

	g := newTestGenerator(t, client)
	_, err := g.Quiz(context.Background(), QuizRequest{
		Curriculum:      Curriculum{Subject: "Science", Grade: "Grade 6", Topic: "Photosynthesis"},
		QuestionCount:   5,
		DifficultyLevel: "Easy",
		TaxonomyType:    "Bloom's Taxonomy",
		TaxonomyLevels:  []string{"Remember"},
	})
	if !errors.Is(err, transportErr) {
		t.Fatalf("err = %v, want the original transport error", err)
	}
}

func TestWorksheet_AnswerKeyTogglesPrompt(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("worksheet body")
	g := newTestGenerator(t, client)

	req := WorksheetRequest{
		Curriculum:      Curriculum{Subject: "Mathematics", Grade: "Grade 4", Topic: "Fractions"},
		QuestionCount:   8,
		DifficultyLevel: "Easy",
	}

	if _, err := g.Worksheet(context.Background(), req); err != nil {
		t.Fatalf("Worksheet() error = %v", err)
	}
	req.IncludeAnswerKey = true
	if _, err := g.Worksheet(context.Background(), req); err != nil {
		t.Fatalf("Worksheet() error = %v", err)
	}

	calls := client.Calls()
	if len(calls) != 2 {
		t.Fatalf("generation calls = %d, want 2", len(calls))
	}
	if got := userTurn(t, calls[0]); containsAnswerKey(got) {
		t.Errorf("answer key requested without the flag:\n%s", got)
	}
	if got := userTurn(t, calls[1]); !containsAnswerKey(got) {
		t.Errorf("answer key not requested with the flag:\n%s", got)
	}
}

func TestPresentation_SlideCountBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slides  int
		wantErr bool
	}{
		{"below minimum", 4, true},
		{"at minimum", 5, false},
		{"at maximum", 30, false},
		{"above maximum", 31, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := testutil.NewScriptedClient("deck body")
			g := newTestGenerator(t, client)

			_, err := g.Presentation(context.Background(), PresentationRequest{
				Curriculum:       Curriculum{Subject: "History", Grade: "Grade 8", Topic: "The Mauryan Empire"},
				SlideCount:       tt.slides,
				VisualPreference: "Balanced",
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Presentation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := fault.KindOf(err); got != fault.KindArtifactGeneration {
					t.Errorf("fault.KindOf(err) = %q, want %q", got, fault.KindArtifactGeneration)
				}
				if got := len(client.Calls()); got != 0 {
					t.Errorf("generation calls = %d, want 0", got)
				}
			}
		})
	}
}

func TestAssessment_SingleCall(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("assessment body")
	g := newTestGenerator(t, client)

	artifact, err := g.Assessment(context.Background(), AssessmentRequest{
		Curriculum:     Curriculum{Subject: "English", Grade: "Grade 7", Topic: "Poetry"},
		QuestionCount:  12,
		Duration:       "1 hour",
		AssessmentType: "Unit Test",
	})
	if err != nil {
		t.Fatalf("Assessment() error = %v", err)
	}
	if artifact.Type != content.TypeAssessment {
		t.Errorf("artifact type = %q, want %q", artifact.Type, content.TypeAssessment)
	}
	if artifact.Text != "assessment body" {
		t.Errorf("artifact text = %q", artifact.Text)
	}
}

func userTurn(t *testing.T, conv llm.Conversation) string {
	t.Helper()
	for _, turn := range conv {
		if turn.Role == llm.RoleUser {
			return turn.Content
		}
	}
	t.Fatal("conversation has no user turn")
	return ""
}

func containsAnswerKey(prompt string) bool {
	return strings.Contains(strings.ToLower(prompt), "answer key")
}
