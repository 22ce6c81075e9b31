package bank

import "strings"

// Delimiter joins multi-valued cells (selection options, correct answers)
// inside a single tabular field. Both "A + B" and "A+B" parse to the same
// list; writes always use the spaced form.
const Delimiter = "+"

// Record is the typed view of one row of the question bank.
type Record struct {
	ExamLabel         string   `json:"exam_label"`
	QuestionLabel     string   `json:"question_label"`
	Text              string   `json:"text"`
	Options           []string `json:"options,omitempty"`
	SelectionCriteria string   `json:"selection_criteria,omitempty"`
	CorrectAnswers    string   `json:"correct_answers,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
	Domain            string   `json:"domain,omitempty"`

	// Occurrence counts how many generation runs have sampled this record.
	Occurrence int64 `json:"occurrence"`
	// Generation is the number of the last run that sampled this record,
	// nil when it has never been sampled (or the stored value was unusable).
	Generation *int64 `json:"generation,omitempty"`
}

// MultiSelect reports whether more than one option may be selected for this
// question. Presence of a selection-criteria note is the flag.
func (r Record) MultiSelect() bool { return strings.TrimSpace(r.SelectionCriteria) != "" }

// Valid reports whether the record can appear in an exam at all.
func (r Record) Valid() bool { return strings.TrimSpace(r.Text) != "" }

// Normalize applies the store-level defaults in place: trimmed labels,
// non-negative occurrence. Unusable numeric fields have already been mapped
// to zero/nil by the store.
func Normalize(records []Record) {
	for i := range records {
		r := &records[i]
		r.ExamLabel = strings.TrimSpace(r.ExamLabel)
		r.QuestionLabel = strings.TrimSpace(r.QuestionLabel)
		r.Text = strings.TrimSpace(r.Text)
		r.SelectionCriteria = strings.TrimSpace(r.SelectionCriteria)
		r.Difficulty = strings.TrimSpace(r.Difficulty)
		r.Domain = strings.TrimSpace(r.Domain)
		if r.Occurrence < 0 {
			r.Occurrence = 0
		}
	}
}

// SplitJoined splits a delimiter-joined cell into trimmed labels, dropping
// empties. A blank cell yields nil.
func SplitJoined(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// JoinList is the inverse of SplitJoined using the canonical spaced form.
func JoinList(list []string) string {
	return strings.Join(list, " "+Delimiter+" ")
}
