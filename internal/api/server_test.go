package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/eduforge/eduforge/internal/api"
	"github.com/eduforge/eduforge/internal/auth"
	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/fault"
	"github.com/eduforge/eduforge/internal/generate"
	"github.com/eduforge/eduforge/internal/log"
	"github.com/eduforge/eduforge/internal/testutil"
)

// tokenProvider resolves only requests that carry a Bearer token, the way
// the Supabase provider does, without the network.
type tokenProvider struct {
	identity auth.Identity
}

func (p tokenProvider) CurrentUser(ctx context.Context) (auth.Identity, error) {
	if _, ok := auth.TokenFromContext(ctx); !ok {
		return auth.Identity{}, fault.New(fault.KindUnauthenticated, "no access token on request")
	}
	return p.identity, nil
}

type serverFixture struct {
	handler http.Handler
	client  *testutil.ScriptedClient
	table   *testutil.MemoryTable
	userID  uuid.UUID
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	client := testutil.NewScriptedClient("generated text")
	gen, err := generate.New(generate.Config{Client: client})
	if err != nil {
		t.Fatalf("generate.New() error = %v", err)
	}

	userID := uuid.New()
	table := testutil.NewMemoryTable()
	store, err := content.NewStore(content.Config{
		Table:  table,
		Auth:   tokenProvider{identity: auth.Identity{ID: userID}},
		Logger: log.NewNop(),
	})
	if err != nil {
		t.Fatalf("content.NewStore() error = %v", err)
	}

	srv, err := api.NewServer(api.ServerConfig{
		Logger:    log.NewNop(),
		Generator: gen,
		Store:     store,
		IsDev:     true,
		RateLimit: 1000,
		RateBurst: 1000,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return &serverFixture{handler: srv.Handler(), client: client, table: table, userID: userID}
}

func (fx *serverFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var env map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return env
}

const quizBody = `{
	"request": {
		"subject": "Science",
		"grade": "Grade 6",
		"topic": "Photosynthesis",
		"question_count": 5,
		"difficulty_level": "Medium",
		"taxonomy_type": "Bloom's Taxonomy",
		"taxonomy_levels": ["Remember", "Apply"]
	}
}`

func TestHealthz(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	rec := fx.do(t, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGenerateQuiz(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	fx.client.Respond("create a quiz", "Q1. What is photosynthesis?")

	rec := fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "", quizBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var doc struct {
		Type    content.Type `json:"type"`
		Content string       `json:"content"`
		Saved   bool         `json:"saved"`
	}
	if err := json.Unmarshal(env["data"], &doc); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if doc.Type != content.TypeQuiz {
		t.Errorf("type = %q", doc.Type)
	}
	if doc.Content != "Q1. What is photosynthesis?" {
		t.Errorf("content = %q", doc.Content)
	}
	if doc.Saved {
		t.Error("document reported saved without the save flag")
	}
}

func TestGenerateQuiz_SaveRequiresToken(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	body := `{
	"request": {
		"subject": "Science",
		"grade": "Grade 6",
		"topic": "Photosynthesis",
		"question_count": 5,
		"difficulty_level": "Medium",
		"taxonomy_type": "Bloom's Taxonomy",
		"taxonomy_levels": ["Remember", "Apply"]
	},
	"save": true
}`

	rec := fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401; body = %s", rec.Code, rec.Body.String())
	}
	if got := len(fx.table.Rows()); got != 0 {
		t.Errorf("rows saved without a token: %d", got)
	}

	rec = fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "user-jwt", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rows := fx.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("stored rows = %d, want 1", len(rows))
	}
	if rows[0].UserID != fx.userID {
		t.Errorf("owner = %s, want %s", rows[0].UserID, fx.userID)
	}
	if rows[0].Chapter != "Photosynthesis" {
		t.Errorf("chapter = %q, want the topic", rows[0].Chapter)
	}
}

// A generation that succeeds but fails to persist must still deliver the
// document; the client retries the save through POST /api/v1/contents
// instead of paying for another generation.
func TestGenerateQuiz_SaveFailureReturnsDocument(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	fx.client.Respond("create a quiz", "Q1. What is photosynthesis?")
	fx.table.FailInsert(fault.New(fault.KindPersistence, "insert rejected"))

	body := `{
	"request": {
		"subject": "Science",
		"grade": "Grade 6",
		"topic": "Photosynthesis",
		"question_count": 5,
		"difficulty_level": "Medium",
		"taxonomy_type": "Bloom's Taxonomy",
		"taxonomy_levels": ["Remember", "Apply"]
	},
	"save": true
}`

	rec := fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "user-jwt", body)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body = %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if !strings.Contains(string(env["error"]), `"code":"persistence"`) {
		t.Errorf("error = %s", env["error"])
	}
	var doc struct {
		Type    content.Type `json:"type"`
		Content string       `json:"content"`
		Saved   bool         `json:"saved"`
	}
	if err := json.Unmarshal(env["data"], &doc); err != nil {
		t.Fatalf("decoding data: %v; body = %s", err, rec.Body.String())
	}
	if doc.Content != "Q1. What is photosynthesis?" {
		t.Errorf("content = %q, want the generated document", doc.Content)
	}
	if doc.Saved {
		t.Error("document reported saved after a failed insert")
	}
	if got := len(fx.table.Rows()); got != 0 {
		t.Fatalf("stored rows = %d, want 0", got)
	}

	// The returned document is enough to retry the save on its own.
	fx.table.FailInsert(nil)
	saveBody := `{"type": "quiz", "subject": "Science", "grade": "Grade 6", "chapter": "Photosynthesis", "content": "Q1. What is photosynthesis?"}`
	rec = fx.do(t, http.MethodPost, "/api/v1/contents", "user-jwt", saveBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("retry save status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := len(fx.table.Rows()); got != 1 {
		t.Errorf("stored rows after retry = %d, want 1", got)
	}
	if got := len(fx.client.Calls()); got != 1 {
		t.Errorf("generation calls = %d, want 1 (no regeneration)", got)
	}
}

func TestGenerate_ValidationError(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	body := `{"request": {"subject": "", "grade": "Grade 6", "topic": "Photosynthesis", "question_count": 5, "difficulty_level": "Medium", "taxonomy_type": "Bloom's Taxonomy", "taxonomy_levels": ["Remember"]}}`

	rec := fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"code":"artifact_generation"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGenerateLessonPlan_SectionFailure(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	fx.client.Fail("learning activities", errors.New("model hiccup"))

	body := `{"request": {"subject": "Science", "grade": "Grade 6", "topic": "Photosynthesis", "duration": "45 minutes", "learning_styles": ["Visual"]}}`
	rec := fx.do(t, http.MethodPost, "/api/v1/generate/lesson-plan", "", body)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"code":"section_generation"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGenerate_MalformedBody(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	rec := fx.do(t, http.MethodPost, "/api/v1/generate/quiz", "", `{"request": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestContents_ListRequiresToken(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)

	rec := fx.do(t, http.MethodGet, "/api/v1/contents", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"unauthenticated"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestContents_ListAndSave(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)

	rec := fx.do(t, http.MethodGet, "/api/v1/contents", "user-jwt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("empty list body = %s", rec.Body.String())
	}

	saveBody := `{"type": "quiz", "subject": "Science", "grade": "Grade 6", "chapter": "Photosynthesis", "content": "Q1."}`
	rec = fx.do(t, http.MethodPost, "/api/v1/contents", "user-jwt", saveBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = fx.do(t, http.MethodGet, "/api/v1/contents", "user-jwt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"chapter":"Photosynthesis"`) {
		t.Errorf("list body = %s", rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	client := testutil.NewScriptedClient("generated text")
	gen, err := generate.New(generate.Config{Client: client})
	if err != nil {
		t.Fatalf("generate.New() error = %v", err)
	}
	store, err := content.NewStore(content.Config{
		Table:  testutil.NewMemoryTable(),
		Auth:   tokenProvider{identity: auth.Identity{ID: uuid.New()}},
		Logger: log.NewNop(),
	})
	if err != nil {
		t.Fatalf("content.NewStore() error = %v", err)
	}

	srv, err := api.NewServer(api.ServerConfig{
		Logger:    log.NewNop(),
		Generator: gen,
		Store:     store,
		IsDev:     true,
		RateLimit: 0.001, // effectively no refill during the test
		RateBurst: 2,
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	var last int
	for range 4 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contents", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("final status = %d, want 429", last)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	fx := newServerFixture(t)
	rec := fx.do(t, http.MethodGet, "/api/v1/contents", "user-jwt", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}
