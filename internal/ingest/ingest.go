// Package ingest validates and loads question-set documents.
//
// Validation is structural only: it checks field presence and types
// against the document schema. It deliberately does not check that
// options are non-empty, that the correct answer is one of the
// options, or that IDs are unique.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nikhilv/quizstack/internal/quiz"
)

var (
	// ErrMalformedJSON means the document is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON document")

	// ErrInvalidDocument means the document parsed but does not match
	// the question-set schema.
	ErrInvalidDocument = errors.New("invalid question set format")
)

// Validate checks doc against the question-set schema. It returns
// ErrMalformedJSON for unparseable input and ErrInvalidDocument for a
// schema mismatch, both wrapped with detail.
func Validate(doc []byte) error {
	var parsed any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	compiled, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile question set schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

// Load validates doc and decodes it into a QuestionSet.
func Load(doc []byte) (quiz.QuestionSet, error) {
	if err := Validate(doc); err != nil {
		return quiz.QuestionSet{}, err
	}
	var set quiz.QuestionSet
	if err := json.Unmarshal(doc, &set); err != nil {
		return quiz.QuestionSet{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return set, nil
}

// LoadFile reads and loads the question-set document at path.
func LoadFile(path string) (quiz.QuestionSet, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return quiz.QuestionSet{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(doc)
}
