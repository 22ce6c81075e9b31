package httpapi

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/snp-tools/examgen/internal/answerkey"
	"github.com/snp-tools/examgen/internal/grading"
)

// GET /bank: the full record listing. Correct answers are stripped unless
// the caller presents a valid operator token, same idea as serving exams to
// students without their keys.
func (s *Server) handleBank(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if !s.auth.Authorized(r) {
		for i := range records {
			records[i].CorrectAnswers = ""
		}
	}
	writeJSON(w, records)
}

// POST /generate: run one generation. Runs are serialized; the store is
// single-writer.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SampleSize *int `json:"sample_size"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	n := s.sampleSize
	if req.SampleSize != nil && *req.SampleSize >= 0 {
		n = *req.SampleSize
	}

	s.genMu.Lock()
	run, err := s.svc.Run(r.Context(), n)
	s.genMu.Unlock()
	if err != nil {
		s.log.Errorw("generation run failed", "error", err)
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, map[string]interface{}{
		"generation": run.Generation,
		"sampled":    len(run.Indices),
		"document":   run.DocumentPath,
	})
}

// POST /grade: grade a selection set against a key. Nothing is stored.
func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key        answerkey.Key    `json:"key"`
		Selections map[int][]string `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	writeJSON(w, grading.Grade(req.Key, req.Selections))
}

// GET /exams: generation numbers of the documents present in the output dir.
func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, []int64{})
			return
		}
		http.Error(w, err.Error(), 500)
		return
	}
	var gens []int64
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "exam_test_") || !strings.HasSuffix(name, ".html") {
			continue
		}
		num := strings.TrimSuffix(strings.TrimPrefix(name, "exam_test_"), ".html")
		if g, err := strconv.ParseInt(num, 10, 64); err == nil {
			gens = append(gens, g)
		}
	}
	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })
	writeJSON(w, gens)
}

// GET /exams/{generation}: serve one rendered document.
func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	gen, err := strconv.ParseInt(chi.URLParam(r, "generation"), 10, 64)
	if err != nil {
		http.Error(w, "bad generation", http.StatusBadRequest)
		return
	}
	path := filepath.Join(s.outputDir, "exam_test_"+strconv.FormatInt(gen, 10)+".html")
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "exam not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
