// Package generate turns artifact requests into assembled teaching
// documents by orchestrating calls to the generation client.
//
// Each generator follows the same shape: validate the request, build one
// conversation per section, fan the calls out concurrently, wait for all of
// them to settle, and assemble the section texts under fixed headings in a
// fixed order. If any section fails, the whole artifact fails; no partial
// document is ever returned.
package generate

import (
	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/fault"
)

// Curriculum is the context every artifact request must carry. All three
// fields are required; an artifact is never produced, or persisted, without
// them.
type Curriculum struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Topic   string `json:"topic"`
}

func (c Curriculum) validate(artifact string) error {
	switch {
	case c.Subject == "":
		return missingField(artifact, "subject")
	case c.Grade == "":
		return missingField(artifact, "grade")
	case c.Topic == "":
		return missingField(artifact, "topic")
	}
	return nil
}

func missingField(artifact, field string) error {
	return fault.New(fault.KindArtifactGeneration, artifact+" request missing "+field)
}

// LessonPlanRequest describes a four-section lesson plan.
type LessonPlanRequest struct {
	Curriculum
	Duration               string   `json:"duration"`
	LearningStyles         []string `json:"learning_styles"`
	AdditionalInstructions string   `json:"additional_instructions,omitempty"`
}

func (r LessonPlanRequest) validate() error {
	if err := r.Curriculum.validate("lesson plan"); err != nil {
		return err
	}
	if r.Duration == "" {
		return missingField("lesson plan", "duration")
	}
	if len(r.LearningStyles) == 0 {
		return missingField("lesson plan", "learning styles")
	}
	return nil
}

// QuizRequest describes a single-call quiz.
type QuizRequest struct {
	Curriculum
	QuestionCount   int      `json:"question_count"`
	DifficultyLevel string   `json:"difficulty_level"`
	TaxonomyType    string   `json:"taxonomy_type"`
	TaxonomyLevels  []string `json:"taxonomy_levels"`
}

func (r QuizRequest) validate() error {
	if err := r.Curriculum.validate("quiz"); err != nil {
		return err
	}
	if r.QuestionCount <= 0 {
		return missingField("quiz", "question count")
	}
	if r.DifficultyLevel == "" {
		return missingField("quiz", "difficulty level")
	}
	if r.TaxonomyType == "" {
		return missingField("quiz", "taxonomy type")
	}
	if len(r.TaxonomyLevels) == 0 {
		return missingField("quiz", "taxonomy levels")
	}
	return nil
}

// WorksheetRequest describes a practice worksheet.
type WorksheetRequest struct {
	Curriculum
	QuestionCount          int    `json:"question_count"`
	DifficultyLevel        string `json:"difficulty_level"`
	IncludeAnswerKey       bool   `json:"include_answer_key"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

func (r WorksheetRequest) validate() error {
	if err := r.Curriculum.validate("worksheet"); err != nil {
		return err
	}
	if r.QuestionCount <= 0 {
		return missingField("worksheet", "question count")
	}
	if r.DifficultyLevel == "" {
		return missingField("worksheet", "difficulty level")
	}
	return nil
}

// PresentationRequest describes a slide deck outline.
type PresentationRequest struct {
	Curriculum
	SlideCount             int    `json:"slide_count"`
	VisualPreference       string `json:"visual_preference"`
	IncludeActivities      bool   `json:"include_activities"`
	IncludeAssessment      bool   `json:"include_assessment"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

func (r PresentationRequest) validate() error {
	if err := r.Curriculum.validate("presentation"); err != nil {
		return err
	}
	if r.SlideCount <= 0 {
		return missingField("presentation", "slide count")
	}
	if r.VisualPreference == "" {
		return missingField("presentation", "visual preference")
	}
	return nil
}

// AssessmentRequest describes a formal assessment paper.
type AssessmentRequest struct {
	Curriculum
	QuestionCount          int    `json:"question_count"`
	Duration               string `json:"duration"`
	AssessmentType         string `json:"assessment_type"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

func (r AssessmentRequest) validate() error {
	if err := r.Curriculum.validate("assessment"); err != nil {
		return err
	}
	if r.QuestionCount <= 0 {
		return missingField("assessment", "question count")
	}
	if r.Duration == "" {
		return missingField("assessment", "duration")
	}
	if r.AssessmentType == "" {
		return missingField("assessment", "assessment type")
	}
	return nil
}

// Artifact is one fully assembled teaching document. Immutable once
// produced; the text exists independently of whether it is ever persisted.
type Artifact struct {
	Type content.Type
	Text string
}
