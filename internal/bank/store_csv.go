package bank

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column names as they appear in the header row of the bank file.
const (
	colExamLabel      = "Exam #"
	colQuestionLabel  = "Question #"
	colText           = "Question Text"
	colOptions        = "Selections"
	colCriteria       = "Selection Criteria"
	colCorrectAnswers = "Correct Answers & Selections"
	colDifficulty     = "Difficulty Level"
	colDomain         = "Domain"
	colOccurrence     = "Occurrence"
	colGeneration     = "Exam Number"
)

var csvHeader = []string{
	colExamLabel, colQuestionLabel, colText, colOptions, colCriteria,
	colCorrectAnswers, colDifficulty, colDomain, colOccurrence, colGeneration,
}

// CSVStore is a file-backed table with named columns. Missing columns are
// defaulted on load rather than rejected; Save always writes the full header.
type CSVStore struct {
	path string
}

func NewCSVStore(path string) *CSVStore { return &CSVStore{path: path} }

func (s *CSVStore) Load(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{
			ExamLabel:         cell(row, colExamLabel),
			QuestionLabel:     cell(row, colQuestionLabel),
			Text:              cell(row, colText),
			Options:           SplitJoined(cell(row, colOptions)),
			SelectionCriteria: cell(row, colCriteria),
			CorrectAnswers:    cell(row, colCorrectAnswers),
			Difficulty:        cell(row, colDifficulty),
			Domain:            cell(row, colDomain),
			Occurrence:        parseCount(cell(row, colOccurrence)),
			Generation:        parseGeneration(cell(row, colGeneration)),
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the whole table. The new content lands in a temp file first
// and replaces the store in one rename, so a failed write never leaves a
// half-written bank behind.
func (s *CSVStore) Save(ctx context.Context, records []Record) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".bank-*.csv")
	if err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ExamLabel,
			rec.QuestionLabel,
			rec.Text,
			JoinList(rec.Options),
			rec.SelectionCriteria,
			rec.CorrectAnswers,
			rec.Difficulty,
			rec.Domain,
			strconv.FormatInt(rec.Occurrence, 10),
			formatGeneration(rec.Generation),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}

// parseCount maps a malformed or missing occurrence cell to 0.
func parseCount(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseGeneration maps a malformed or missing generation cell to absent.
func parseGeneration(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formatGeneration(g *int64) string {
	if g == nil {
		return ""
	}
	return strconv.FormatInt(*g, 10)
}
