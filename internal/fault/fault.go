// Package fault defines the closed error taxonomy shared by the generation
// core and the content store.
//
// Every failure that crosses a component boundary is carried by *Error with a
// machine-readable Kind. Callers branch on KindOf / errors.As instead of
// inspecting concrete transport error types, which never leak past the
// component that caught them.
//
// Propagation rule: once an error carries a Kind, it passes through upper
// layers unchanged. Upgrade wraps only unclassified errors, so the most
// specific diagnostic always survives.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies a failure category.
type Kind string

const (
	// KindTransport indicates the generation service could not be reached
	// or returned a non-success status.
	KindTransport Kind = "transport"

	// KindTimeout indicates a generation call exceeded its allotted time.
	KindTimeout Kind = "timeout"

	// KindSectionGeneration indicates one section of a multi-section
	// artifact failed.
	KindSectionGeneration Kind = "section_generation"

	// KindArtifactGeneration indicates an entire artifact failed.
	KindArtifactGeneration Kind = "artifact_generation"

	// KindUnauthenticated indicates an operation requiring a signed-in
	// identity was attempted without one.
	KindUnauthenticated Kind = "unauthenticated"

	// KindPersistence indicates the backing store rejected a read or write.
	KindPersistence Kind = "persistence"

	// KindUnknown is returned by KindOf for unclassified errors.
	KindUnknown Kind = "unknown"
)

// Error is a classified error. Section is set only for
// KindSectionGeneration, naming the section that failed.
type Error struct {
	Kind    Kind
	Section string
	Message string
	Err     error // wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error wrapping an underlying cause.
// The cause is preserved for errors.Is/As but its text is considered
// diagnostic, not user-facing.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Section creates a SectionGeneration error naming the failed section.
func Section(section, message string, err error) *Error {
	return &Error{Kind: KindSectionGeneration, Section: section, Message: message, Err: err}
}

// KindOf returns the Kind of the outermost classified error in err's chain,
// or KindUnknown if the chain carries no *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err's chain carries a classified error of kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}

// Upgrade classifies err as kind unless it is already classified, in which
// case err is returned unchanged. This is the single point where a generic
// runtime failure gains a Kind; above it, classified errors pass through.
func Upgrade(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return Wrap(kind, message, err)
}
