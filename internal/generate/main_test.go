package generate

import (
	"testing"

	"go.uber.org/goleak"
)

// Section fan-out must not strand worker goroutines, even when a section
// fails and the remaining sections are still in flight.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
