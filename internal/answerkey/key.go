// Package answerkey derives the per-run grading key from the sampled
// records' correct-answer cells.
package answerkey

import (
	"encoding/json"

	"github.com/snp-tools/examgen/internal/bank"
)

// Key maps a 1-based question position within a run to the set of option
// labels accepted as correct. Positions whose correct-answer cell is blank
// or unparseable are absent: those questions are ungraded.
type Key map[int][]string

// Build derives the key for the sampled records in run order. Labels are
// split on the bank delimiter and trimmed; comparison downstream is exact
// string equality, never case-folded.
func Build(records []bank.Record) Key {
	key := Key{}
	for i, rec := range records {
		labels := bank.SplitJoined(rec.CorrectAnswers)
		if len(labels) == 0 {
			continue
		}
		key[i+1] = labels
	}
	return key
}

// JSON serializes the key for embedding in a document. encoding/json keeps
// HTML escaping on, so the output is safe inside a <script> block even when
// option labels contain markup characters.
func (k Key) JSON() ([]byte, error) {
	return json.Marshal(k)
}
