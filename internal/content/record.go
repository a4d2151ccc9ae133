// Package content provides the content store: the single authoritative
// in-memory cache of the current user's recent artifacts, synchronized with
// the remote content table.
//
// The store is the sole writer of artifacts to persistent storage. Records
// are created on save and never mutated client-side afterwards; the cache is
// only ever replaced wholesale by a completed fetch.
package content

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates the artifact content types, matching the type column
// of the content table.
type Type string

const (
	TypeLessonPlan   Type = "lesson-plan"
	TypeQuiz         Type = "quiz"
	TypeWorksheet    Type = "worksheet"
	TypePresentation Type = "presentation"
	TypeAssessment   Type = "assessment"
)

// Valid reports whether t is one of the known content types.
func (t Type) Valid() bool {
	switch t {
	case TypeLessonPlan, TypeQuiz, TypeWorksheet, TypePresentation, TypeAssessment:
		return true
	}
	return false
}

// Record is the persisted representation of one saved artifact plus its
// curriculum context. Field tags mirror the content table columns.
//
// Invariant: a record is never written with an empty type, subject, grade,
// chapter, or content. Save enforces this before touching the table.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Type      Type           `json:"type"`
	Subject   string         `json:"subject"`
	Grade     string         `json:"grade"`
	Chapter   string         `json:"chapter"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// validateForSave checks the fields a caller must provide before a record
// may be inserted. Owner and timestamps are stamped by the store itself.
func (r Record) validateForSave() error {
	switch {
	case !r.Type.Valid():
		return errMissingField("type")
	case r.Subject == "":
		return errMissingField("subject")
	case r.Grade == "":
		return errMissingField("grade")
	case r.Chapter == "":
		return errMissingField("chapter")
	case r.Content == "":
		return errMissingField("content")
	}
	return nil
}
