package quiz

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/remivoice/remi/internal/difficulty"
)

// Required question-source columns. Header matching is case-insensitive and
// ignores surrounding whitespace.
const (
	colQuestion   = "question"
	colDifficulty = "difficulty"
	colAnswers    = "answers" // optional; "|"-separated phrasings
)

// LoadFile reads a question bank from a CSV file.
func LoadFile(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question source: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses question rows from CSV. A missing required column is fatal:
// running with an invalid schema is worse than not starting. Rows with an
// unknown difficulty label are rejected for the same reason.
func Load(r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read question source header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colQuestion, colDifficulty} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("question source missing required column %q", required)
		}
	}

	var questions []Question
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read question source row %d: %w", row, err)
		}
		row++

		text := strings.TrimSpace(field(rec, cols[colQuestion]))
		if text == "" {
			continue
		}

		tier, err := difficulty.ParseTier(field(rec, cols[colDifficulty]))
		if err != nil {
			return nil, fmt.Errorf("question source row %d: %w", row, err)
		}

		var answers []string
		if idx, ok := cols[colAnswers]; ok {
			for _, a := range strings.Split(field(rec, idx), "|") {
				if a = strings.TrimSpace(a); a != "" {
					answers = append(answers, a)
				}
			}
		}

		id := fmt.Sprintf("q-%03d", row)
		questions = append(questions, NewQuestion(id, text, tier, answers))
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("question source contains no questions")
	}
	return questions, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
