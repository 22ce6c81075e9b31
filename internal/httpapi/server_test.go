package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/snp-tools/examgen/internal/auth"
	"github.com/snp-tools/examgen/internal/bank"
	"github.com/snp-tools/examgen/internal/engine"
)

type memStore struct {
	records []bank.Record
}

func (m *memStore) Load(ctx context.Context) ([]bank.Record, error) {
	out := make([]bank.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memStore) Save(ctx context.Context, records []bank.Record) error {
	m.records = records
	return nil
}

func newTestServer(t *testing.T) (*Server, http.Handler, *auth.AuthService) {
	t.Helper()
	store := &memStore{records: []bank.Record{
		{Text: "Q1", Options: []string{"A", "B"}, CorrectAnswers: "A"},
		{Text: "Q2", Options: []string{"C", "D"}, CorrectAnswers: "D"},
	}}
	outputDir := t.TempDir()
	log := zap.NewNop().Sugar()
	svc := engine.NewService(store, outputDir, rand.New(rand.NewSource(1)), log)
	authSvc := auth.NewAuthService("test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	srv := NewServer(store, svc, authSvc, string(hash), outputDir, 40, log)
	return srv, srv.Router([]string{"http://localhost:3000"}), authSvc
}

func bearer(t *testing.T, a *auth.AuthService) string {
	t.Helper()
	tok, err := a.IssueJWT("operator")
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func TestBankStripsAnswersWithoutToken(t *testing.T) {
	_, h, a := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/bank", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"correct_answers"`) {
		t.Error("unauthenticated listing must strip correct answers")
	}

	req := httptest.NewRequest("GET", "/bank", nil)
	req.Header.Set("Authorization", bearer(t, a))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"correct_answers"`) {
		t.Error("authenticated listing must include correct answers")
	}
}

func TestGenerateRequiresToken(t *testing.T) {
	_, h, a := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/generate", strings.NewReader("{}")))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated generate = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest("POST", "/generate", strings.NewReader("{}"))
	req.Header.Set("Authorization", bearer(t, a))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("generate = %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Generation int64 `json:"generation"`
		Sampled    int   `json:"sampled"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Generation != 1 || out.Sampled != 2 {
		t.Errorf("run = %+v", out)
	}

	// the fresh document shows up in the listing and is servable
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/exams", nil))
	if !strings.Contains(rec.Body.String(), "1") {
		t.Errorf("exam listing = %s", rec.Body.String())
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/exams/1", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "Exam Test #1") {
		t.Errorf("serve exam = %d", rec.Code)
	}
}

func TestGradeEndpoint(t *testing.T) {
	_, h, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]interface{}{
		"key":        map[string][]string{"1": {"A"}, "2": {"B", "C"}},
		"selections": map[string][]string{"1": {"A"}, "2": {"C"}},
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/grade", bytes.NewReader(body)))
	if rec.Code != 200 {
		t.Fatalf("grade = %d: %s", rec.Code, rec.Body.String())
	}
	var sum struct {
		Graded  int `json:"graded"`
		Correct int `json:"correct"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Graded != 2 || sum.Correct != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestLogin(t *testing.T) {
	_, h, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"password":"wrong"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"password":"letmein"}`)))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetExamNotFound(t *testing.T) {
	_, h, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/exams/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing exam = %d, want 404", rec.Code)
	}
}
