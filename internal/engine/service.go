package engine

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/snp-tools/examgen/internal/answerkey"
	"github.com/snp-tools/examgen/internal/bank"
	"github.com/snp-tools/examgen/internal/render"
)

// Run is one invocation's output. It exists only for the duration of the
// run; the key and document are reconstructable from the store and the file.
type Run struct {
	Generation   int64
	Indices      []int
	Questions    []bank.Record
	Key          answerkey.Key
	DocumentPath string
}

type Service struct {
	Store     bank.Store
	OutputDir string
	Rand      *rand.Rand
	Log       *zap.SugaredLogger
}

func NewService(store bank.Store, outputDir string, rng *rand.Rand, log *zap.SugaredLogger) *Service {
	return &Service{Store: store, OutputDir: outputDir, Rand: rng, Log: log}
}

// Run executes one generation: load, sample, render, then commit. The
// document is written before the store is saved; if the save fails the
// document is removed again, so the bank is never left mutated alongside a
// missing artifact, and the run never claims success unless both writes
// landed.
func (s *Service) Run(ctx context.Context, sampleSize int) (Run, error) {
	records, err := s.Store.Load(ctx)
	if err != nil {
		return Run{}, err
	}
	bank.Normalize(records)

	generation := NextGeneration(records)
	indices := Sample(s.Rand, len(records), sampleSize)

	questions := make([]bank.Record, 0, len(indices))
	for _, i := range indices {
		questions = append(questions, records[i])
	}
	key := answerkey.Build(questions)

	doc, err := render.Document(generation, questions, key)
	if err != nil {
		return Run{}, err
	}

	path := filepath.Join(s.OutputDir, fmt.Sprintf("exam_test_%d.html", generation))
	if err := writeFile(s.OutputDir, path, doc); err != nil {
		return Run{}, fmt.Errorf("write document: %w", err)
	}

	Commit(records, indices, generation)
	if err := s.Store.Save(ctx, records); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			s.Log.Errorw("orphaned document after failed store save", "path", path, "error", rmErr)
		}
		return Run{}, fmt.Errorf("save question store: %w", err)
	}

	s.Log.Infow("generation run complete",
		"generation", generation,
		"sampled", len(indices),
		"graded", len(key),
		"document", path)

	return Run{
		Generation:   generation,
		Indices:      indices,
		Questions:    questions,
		Key:          key,
		DocumentPath: path,
	}, nil
}

// writeFile lands content via a temp file and rename so a failed write never
// leaves a partial document at the final path.
func writeFile(dir, path string, content []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".exam-*.html")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
