package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/fault"
	"github.com/eduforge/eduforge/internal/testutil"
)

func validLessonPlanRequest() LessonPlanRequest {
	return LessonPlanRequest{
		Curriculum:     Curriculum{Subject: "Science", Grade: "Grade 6", Topic: "Photosynthesis"},
		Duration:       "45 minutes",
		LearningStyles: []string{"Visual", "Kinesthetic"},
	}
}

func newTestGenerator(t *testing.T, client *testutil.ScriptedClient) *Generator {
	t.Helper()
	g, err := New(Config{Client: client})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestLessonPlan_AssemblesSectionsInOrder(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("")
	client.Respond("learning objectives", "objectives body")
	client.Respond("materials and preparation", "materials body")
	client.Respond("learning activities", "activities body")
	client.Respond("assessment and closure", "closure body")

	g := newTestGenerator(t, client)
	artifact, err := g.LessonPlan(context.Background(), validLessonPlanRequest())
	if err != nil {
		t.Fatalf("LessonPlan() error = %v", err)
	}
	if artifact.Type != content.TypeLessonPlan {
		t.Errorf("artifact type = %q, want %q", artifact.Type, content.TypeLessonPlan)
	}

	headings := []string{
		"LESSON PLAN",
		"LEARNING OBJECTIVES",
		"MATERIALS AND PREPARATION",
		"LEARNING ACTIVITIES",
		"ASSESSMENT AND CLOSURE",
	}
	pos := -1
	for _, h := range headings {
		idx := strings.Index(artifact.Text, h)
		if idx < 0 {
			t.Fatalf("heading %q missing from document:\n%s", h, artifact.Text)
		}
		if idx <= pos {
			t.Errorf("heading %q out of order", h)
		}
		if strings.Count(artifact.Text, h+"\n"+strings.Repeat("=", len(h))) != 1 {
			t.Errorf("heading %q not underlined exactly once", h)
		}
		pos = idx
	}

	if got := len(client.Calls()); got != 4 {
		t.Errorf("generation calls = %d, want 4", got)
	}
}

// Section order in the document must not depend on which call finishes
// first.
func TestLessonPlan_OrderSurvivesCompletionOrder(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("")
	client.RespondAfter("learning objectives", "objectives body", 60*time.Millisecond)
	client.RespondAfter("materials and preparation", "materials body", 40*time.Millisecond)
	client.RespondAfter("learning activities", "activities body", 20*time.Millisecond)
	client.Respond("assessment and closure", "closure body")

	g := newTestGenerator(t, client)
	artifact, err := g.LessonPlan(context.Background(), validLessonPlanRequest())
	if err != nil {
		t.Fatalf("LessonPlan() error = %v", err)
	}

	objectives := strings.Index(artifact.Text, "objectives body")
	materials := strings.Index(artifact.Text, "materials body")
	activities := strings.Index(artifact.Text, "activities body")
	closure := strings.Index(artifact.Text, "closure body")
	if objectives < 0 || materials < 0 || activities < 0 || closure < 0 {
		t.Fatalf("section body missing from document:\n%s", artifact.Text)
	}
	if !(objectives < materials && materials < activities && activities < closure) {
		t.Errorf("section bodies out of order: %d %d %d %d", objectives, materials, activities, closure)
	}
}

func TestLessonPlan_SectionFailureFailsWholePlan(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("fine")
	client.Fail("learning activities", errors.New("model hiccup"))

	g := newTestGenerator(t, client)
	artifact, err := g.LessonPlan(context.Background(), validLessonPlanRequest())
	if err == nil {
		t.Fatal("LessonPlan() error = nil, want section failure")
	}
	if got := fault.KindOf(err); got != fault.KindSectionGeneration {
		t.Errorf("fault.KindOf(err) = %q, want %q", got, fault.KindSectionGeneration)
	}
	var fe *fault.Error
	if !errors.As(err, &fe) || fe.Section != sectionActivities {
		t.Errorf("section = %q, want %q", fe.Section, sectionActivities)
	}
	if artifact.Text != "" {
		t.Errorf("partial artifact returned: %q", artifact.Text)
	}

	// Siblings are not cancelled; all four calls still run.
	if got := len(client.Calls()); got != 4 {
		t.Errorf("generation calls = %d, want 4", got)
	}
}

func TestLessonPlan_ClassifiedErrorPassesThrough(t *testing.T) {
	t.Parallel()

	timeoutErr := fault.New(fault.KindTimeout, "generation call exceeded its timeout")
	client := testutil.NewScriptedClient("fine")
	client.Fail("materials and preparation", timeoutErr)

	g := newTestGenerator(t, client)
	_, err := g.LessonPlan(context.Background(), validLessonPlanRequest())
	if !errors.Is(err, timeoutErr) {
		t.Fatalf("err = %v, want the original timeout error", err)
	}
	if got := fault.KindOf(err); got != fault.KindTimeout {
		t.Errorf("fault.KindOf(err) = %q, want %q", got, fault.KindTimeout)
	}
}

func TestLessonPlan_ValidationRejectsEarly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*LessonPlanRequest)
	}{
		{"missing subject", func(r *LessonPlanRequest) { r.Subject = "" }},
		{"missing grade", func(r *LessonPlanRequest) { r.Grade = "" }},
		{"missing topic", func(r *LessonPlanRequest) { r.Topic = "" }},
		{"missing duration", func(r *LessonPlanRequest) { r.Duration = "" }},
		{"missing learning styles", func(r *LessonPlanRequest) { r.LearningStyles = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := testutil.NewScriptedClient("fine")
			g := newTestGenerator(t, client)

			req := validLessonPlanRequest()
			tt.mutate(&req)

			_, err := g.LessonPlan(context.Background(), req)
			if err == nil {
				t.Fatal("LessonPlan() error = nil, want validation failure")
			}
			if got := fault.KindOf(err); got != fault.KindArtifactGeneration {
				t.Errorf("fault.KindOf(err) = %q, want %q", got, fault.KindArtifactGeneration)
			}
			if got := len(client.Calls()); got != 0 {
				t.Errorf("generation calls = %d, want 0", got)
			}
		})
	}
}
