// Package httpapi is the optional local preview surface: browse the bank,
// trigger runs, grade selections, and fetch rendered documents. It never
// persists results; generation stays single-writer behind a mutex.
package httpapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/snp-tools/examgen/internal/auth"
	"github.com/snp-tools/examgen/internal/bank"
	"github.com/snp-tools/examgen/internal/engine"
)

type Server struct {
	store      bank.Store
	svc        *engine.Service
	auth       *auth.AuthService
	passHash   string
	outputDir  string
	sampleSize int
	log        *zap.SugaredLogger

	genMu sync.Mutex // serializes generation runs
}

func NewServer(store bank.Store, svc *engine.Service, authSvc *auth.AuthService, passHash, outputDir string, sampleSize int, log *zap.SugaredLogger) *Server {
	return &Server{
		store:      store,
		svc:        svc,
		auth:       authSvc,
		passHash:   passHash,
		outputDir:  outputDir,
		sampleSize: sampleSize,
		log:        log,
	}
}

func (s *Server) Router(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/auth/login", auth.LoginHandler(s.auth, s.passHash))

	r.Get("/bank", s.handleBank)
	r.Post("/grade", s.handleGrade)
	r.Get("/exams", s.handleListExams)
	r.Get("/exams/{generation}", s.handleGetExam)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(s.auth))
		pr.Post("/generate", s.handleGenerate)
	})

	return r
}
