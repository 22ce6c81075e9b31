// Package render emits the self-contained exam document: questions, input
// controls, the serialized answer key and the grading script that the
// document runs when the user asks for scoring.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/snp-tools/examgen/internal/answerkey"
	"github.com/snp-tools/examgen/internal/bank"
)

type question struct {
	Position  int
	Text      string
	Criteria  string
	Metadata  string
	InputType string
	Options   []string
}

type document struct {
	Generation int64
	Questions  []question
	KeyJSON    template.JS
	KeyCount   int
}

// Document renders the sampled records, in run order, into one HTML file
// with the answer key and grading logic embedded. Option values are escaped
// by the template in attribute context and handed back unescaped by the
// browser, so grading compares the same trimmed text the key holds.
func Document(generation int64, records []bank.Record, key answerkey.Key) ([]byte, error) {
	keyJSON, err := key.JSON()
	if err != nil {
		return nil, fmt.Errorf("serialize answer key: %w", err)
	}

	doc := document{
		Generation: generation,
		KeyJSON:    template.JS(keyJSON),
		KeyCount:   len(key),
	}
	for i, rec := range records {
		q := question{
			Position:  i + 1,
			Text:      rec.Text,
			Criteria:  strings.TrimSpace(rec.SelectionCriteria),
			Metadata:  metadataLine(rec),
			InputType: "radio",
		}
		if rec.MultiSelect() {
			q.InputType = "checkbox"
		}
		for _, opt := range rec.Options {
			q.Options = append(q.Options, strings.TrimSpace(opt))
		}
		doc.Questions = append(doc.Questions, q)
	}

	var buf bytes.Buffer
	if err := examTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

func metadataLine(rec bank.Record) string {
	return fmt.Sprintf("%s | %s | Difficulty: %s | Domain: %s",
		rec.ExamLabel, rec.QuestionLabel, rec.Difficulty, rec.Domain)
}

var examTmpl = template.Must(template.New("exam").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Exam Test #{{.Generation}}</title>
<style>
    body {font-family: Arial, sans-serif;}
    h1 {text-align: center;}
    .test-container {margin-bottom: 50px; border: 1px solid #ccc; padding: 20px; border-radius: 8px;}
    .question {margin-bottom: 20px;}
    .options {margin-left: 20px;}
    .metadata {font-size: 0.9em; color: grey; margin-top: 5px;}
    .score {margin-top: 20px; font-size: 1.2em;}
    .status {margin-left: 10px; font-style: italic;}
    .status.correct {color: green;}
    .status.incorrect {color: red;}
    .status.missing {color: darkorange;}
    .correct-answer {color: green; font-weight: bold;}
    .incorrect-answer {color: red; font-weight: bold;}
</style>
<script>
const answerKey = {{.KeyJSON}};

function sameSet(a, b) {
    if (a.length !== b.length) return false;
    const want = new Map();
    b.forEach(v => want.set(v, (want.get(v) || 0) + 1));
    for (const v of a) {
        if (!want.get(v)) return false;
        want.set(v, want.get(v) - 1);
    }
    return true;
}

function checkAnswers() {
    // recompute from current input state; clear prior markings first
    document.querySelectorAll('label.option-label').forEach(el => {
        el.classList.remove('correct-answer', 'incorrect-answer');
    });
    document.querySelectorAll('span.status').forEach(el => {
        el.textContent = '';
        el.className = 'status';
    });

    let correct = 0;
    const graded = Object.keys(answerKey).length;
    Object.keys(answerKey).forEach(pos => {
        const selected = Array.from(
            document.querySelectorAll('input[name="question' + pos + '"]:checked')
        ).map(opt => opt.value.trim());
        const expected = answerKey[pos];

        let status;
        if (selected.length === 0) {
            status = 'missing';
        } else if (sameSet(selected, expected)) {
            status = 'correct';
            correct++;
        } else {
            status = 'incorrect';
        }
        const mark = document.getElementById('status' + pos);
        mark.textContent = status;
        mark.classList.add(status);

        document.querySelectorAll('input[name="question' + pos + '"]').forEach(option => {
            const label = option.nextElementSibling;
            if (expected.includes(option.value.trim())) {
                label.classList.add('correct-answer');
            } else {
                label.classList.add('incorrect-answer');
            }
        });
    });
    document.getElementById('score').textContent = 'Your score is: ' + correct + ' out of ' + graded;
}
</script>
</head>
<body>
<h1>Exam Test #{{.Generation}}</h1>
<div id="test1" class="test-container">
<div id="score" class="score">Your score is: 0 out of {{.KeyCount}}</div>
{{- range .Questions}}
<div class="question">
<b>Question {{.Position}}: {{.Text}}</b><span id="status{{.Position}}" class="status"></span>
{{- if .Criteria}}
<br><i>{{.Criteria}}</i>
{{- end}}
<div class="metadata">{{.Metadata}}</div>
<div class="options">
{{- if .Options}}
{{- $q := .}}
{{- range .Options}}
<input type="{{$q.InputType}}" name="question{{$q.Position}}" value="{{.}}"> <label class="option-label">{{.}}</label><br>
{{- end}}
{{- else}}
<div>No options available for this question.</div>
{{- end}}
</div>
</div>
{{- end}}
<button onclick="checkAnswers()">Check Answers</button>
</div>
</body>
</html>
`))
