// Package grading is the Go mirror of the grading protocol embedded in
// rendered documents: the same classification rules, usable by the preview
// API and testable without a browser.
package grading

import (
	"strings"

	"github.com/snp-tools/examgen/internal/answerkey"
)

type Status string

const (
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusMissing   Status = "missing"
)

// Summary is the outcome of grading one set of selections against a key.
// Graded counts only positions present in the key; ungraded questions never
// enter the denominator.
type Summary struct {
	Graded    int            `json:"graded"`
	Correct   int            `json:"correct"`
	Incorrect int            `json:"incorrect"`
	Missing   int            `json:"missing"`
	Score     float64        `json:"score"`
	Statuses  map[int]Status `json:"statuses"`
}

// Grade classifies each keyed position: correct iff the selected set equals
// the key set (order-independent, exact trimmed strings), missing iff nothing
// is selected, incorrect otherwise. Pure function, so re-grading with the
// same selections always yields the same summary.
func Grade(key answerkey.Key, selections map[int][]string) Summary {
	sum := Summary{Statuses: map[int]Status{}}
	for pos, want := range key {
		sum.Graded++
		got := trimmed(selections[pos])
		switch {
		case len(got) == 0:
			sum.Missing++
			sum.Statuses[pos] = StatusMissing
		case equalStringSets(got, want):
			sum.Correct++
			sum.Statuses[pos] = StatusCorrect
		default:
			sum.Incorrect++
			sum.Statuses[pos] = StatusIncorrect
		}
	}
	if sum.Graded > 0 {
		sum.Score = float64(sum.Correct) / float64(sum.Graded)
	}
	return sum
}

func trimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[string]int{}
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		seen[s]--
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}
