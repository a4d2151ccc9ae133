package llm

import (
	"context"
	"errors"
	"time"

	"github.com/eduforge/eduforge/internal/fault"
)

// classify wraps a failed service call into a classified error. Context
// deadline expiry becomes a Timeout; everything else (transport failures,
// auth rejections, service-reported errors) becomes a Transport error with a
// sanitized message. The raw SDK error stays in the chain for diagnostics
// but its type never drives caller behavior.
func classify(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.Wrap(fault.KindTimeout,
			"generation call exceeded its "+timeout.String()+" timeout", err)
	}
	return fault.Wrap(fault.KindTransport, "generation service call failed", err)
}
