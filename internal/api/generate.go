package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/generate"
)

// Request bodies are bounded; a lesson plan request is a few hundred bytes.
const maxRequestBody = 64 << 10

// generateHandler serves the five POST /api/v1/generate/{type} routes.
type generateHandler struct {
	gen    *generate.Generator
	store  *content.Store
	logger *slog.Logger
}

// generateBody wraps the per-type request with the save flag.
type generateBody[R any] struct {
	Request R    `json:"request"`
	Save    bool `json:"save"`
}

// documentResponse is the wire shape of a generated document.
type documentResponse struct {
	Type    content.Type `json:"type"`
	Content string       `json:"content"`
	Saved   bool         `json:"saved"`
}

func (h *generateHandler) lessonPlan(w http.ResponseWriter, r *http.Request) {
	handleGenerate(h, w, r, func(req generate.LessonPlanRequest) (generate.Artifact, content.Record, error) {
		artifact, err := h.gen.LessonPlan(r.Context(), req)
		return artifact, recordFor(req.Curriculum, map[string]any{
			"duration":        req.Duration,
			"learning_styles": req.LearningStyles,
		}), err
	})
}

func (h *generateHandler) quiz(w http.ResponseWriter, r *http.Request) {
	handleGenerate(h, w, r, func(req generate.QuizRequest) (generate.Artifact, content.Record, error) {
		artifact, err := h.gen.Quiz(r.Context(), req)
		return artifact, recordFor(req.Curriculum, map[string]any{
			"question_count":   req.QuestionCount,
			"difficulty_level": req.DifficultyLevel,
			"taxonomy_type":    req.TaxonomyType,
			"taxonomy_levels":  req.TaxonomyLevels,
		}), err
	})
}

func (h *generateHandler) worksheet(w http.ResponseWriter, r *http.Request) {
	handleGenerate(h, w, r, func(req generate.WorksheetRequest) (generate.Artifact, content.Record, error) {
		artifact, err := h.gen.Worksheet(r.Context(), req)
		return artifact, recordFor(req.Curriculum, map[string]any{
			"question_count":     req.QuestionCount,
			"difficulty_level":   req.DifficultyLevel,
			"include_answer_key": req.IncludeAnswerKey,
		}), err
	})
}

func (h *generateHandler) presentation(w http.ResponseWriter, r *http.Request) {
	handleGenerate(h, w, r, func(req generate.PresentationRequest) (generate.Artifact, content.Record, error) {
		artifact, err := h.gen.Presentation(r.Context(), req)
		return artifact, recordFor(req.Curriculum, map[string]any{
			"slide_count":        req.SlideCount,
			"visual_preference":  req.VisualPreference,
			"include_activities": req.IncludeActivities,
			"include_assessment": req.IncludeAssessment,
		}), err
	})
}

func (h *generateHandler) assessment(w http.ResponseWriter, r *http.Request) {
	handleGenerate(h, w, r, func(req generate.AssessmentRequest) (generate.Artifact, content.Record, error) {
		artifact, err := h.gen.Assessment(r.Context(), req)
		return artifact, recordFor(req.Curriculum, map[string]any{
			"question_count":  req.QuestionCount,
			"duration":        req.Duration,
			"assessment_type": req.AssessmentType,
		}), err
	})
}

// handleGenerate decodes the body, runs the generation, optionally saves,
// and writes the document. Saving requires a Bearer token; generation alone
// does not.
func handleGenerate[R any](h *generateHandler, w http.ResponseWriter, r *http.Request, run func(R) (generate.Artifact, content.Record, error)) {
	var body generateBody[R]
	if !decodeBody(w, r, &body) {
		return
	}

	artifact, rec, err := run(body.Request)
	if err != nil {
		writeFault(w, err)
		return
	}

	saved := false
	if body.Save {
		rec.Type = artifact.Type
		rec.Content = artifact.Text
		if err := h.store.Save(r.Context(), rec); err != nil {
			// The document generated fine. Return it with the save failure so
			// the client can retry via POST /api/v1/contents instead of
			// paying for a regeneration.
			h.logger.Warn("save after generate failed", "type", artifact.Type, "error", err)
			writeFaultData(w, err, documentResponse{
				Type:    artifact.Type,
				Content: artifact.Text,
				Saved:   false,
			})
			return
		}
		saved = true
	}

	writeData(w, http.StatusOK, documentResponse{
		Type:    artifact.Type,
		Content: artifact.Text,
		Saved:   saved,
	})
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

// decodeBody decodes a bounded JSON body, rejecting unknown fields. Writes
// the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "malformed request body"
		if errors.Is(err, io.EOF) {
			msg = "empty request body"
		}
		writeError(w, http.StatusBadRequest, "bad_request", msg)
		return false
	}
	return true
}
