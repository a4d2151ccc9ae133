// Package api provides the JSON REST API server for EduForge.
//
// # Architecture
//
// The server uses Go 1.22+ routing with a layered middleware stack:
//
//	Recovery → Logging → CORS → RateLimit → Auth → Routes
//
// Health probes bypass the middleware stack via a top-level mux, ensuring
// they remain fast and unauthenticated.
//
// # Endpoints
//
// Health probe (no middleware):
//   - GET /healthz: returns {"status":"ok"}
//
// Generation:
//   - POST /api/v1/generate/lesson-plan
//   - POST /api/v1/generate/quiz
//   - POST /api/v1/generate/worksheet
//   - POST /api/v1/generate/presentation
//   - POST /api/v1/generate/assessment
//
// Each takes the matching request body, generates the document, and
// returns it. With "save": true in the body wrapper, the document is also
// persisted before the response is written.
//
// Content:
//   - GET  /api/v1/contents: the caller's most recent saved documents
//   - POST /api/v1/contents: persist a document supplied by the caller
//
// # Error Handling
//
// All responses use an envelope format:
//
//	Success: {"data": <payload>}
//	Error:   {"error": {"code": "...", "message": "..."}}
//
// The error code is the classification of the failure; the HTTP status is
// derived from it (unauthenticated 401, artifact_generation 422,
// transport, section_generation and persistence 502, timeout 504).
//
// A generate request with "save": true that generates successfully but fails
// to persist responds with the save failure's status and BOTH fields: the
// error, plus the document under "data" with "saved": false, so the client
// can retry the save through POST /api/v1/contents without regenerating.
//
// # Security
//
// The middleware stack enforces:
//   - Bearer token authentication for /api/v1 routes
//   - Per-IP rate limiting (token bucket)
//   - CORS with explicit origin allowlist
//   - Security headers (CSP, HSTS, X-Frame-Options, etc.)
package api
