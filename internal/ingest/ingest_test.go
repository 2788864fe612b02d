package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/nikhilv/quizstack/internal/quiz"
)

const validDoc = `{
	"id": "s1",
	"name": "Basics",
	"questions": [
		{
			"id": "q1",
			"text": "2+2?",
			"options": ["3", "4", "5"],
			"correctAnswer": "4",
			"explanation": "Arithmetic"
		}
	]
}`

func TestValidate_ValidDocument(t *testing.T) {
	if err := Validate([]byte(validDoc)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate([]byte(`{"id": "s1",`))
	if !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestValidate_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", `{"name": "x", "questions": []}`},
		{"non-string id", `{"id": 7, "name": "x", "questions": []}`},
		{"missing name", `{"id": "s1", "questions": []}`},
		{"questions not array", `{"id": "s1", "name": "x", "questions": {}}`},
		{"question missing id", `{"id": "s1", "name": "x", "questions": [
			{"text": "t", "options": [], "correctAnswer": "a", "explanation": "e"}]}`},
		{"question text not string", `{"id": "s1", "name": "x", "questions": [
			{"id": "q1", "text": 3, "options": [], "correctAnswer": "a", "explanation": "e"}]}`},
		{"options not array", `{"id": "s1", "name": "x", "questions": [
			{"id": "q1", "text": "t", "options": "ab", "correctAnswer": "a", "explanation": "e"}]}`},
		{"missing correctAnswer", `{"id": "s1", "name": "x", "questions": [
			{"id": "q1", "text": "t", "options": [], "explanation": "e"}]}`},
		{"missing explanation", `{"id": "s1", "name": "x", "questions": [
			{"id": "q1", "text": "t", "options": [], "correctAnswer": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestValidate_NoSemanticChecks(t *testing.T) {
	// Structurally valid documents pass even when semantically odd:
	// the answer is not among the options and the option list is empty.
	doc := `{"id": "s1", "name": "x", "questions": [
		{"id": "q1", "text": "t", "options": [], "correctAnswer": "nowhere", "explanation": "e"}]}`
	if err := Validate([]byte(doc)); err != nil {
		t.Fatalf("expected nil for semantically odd document, got %v", err)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	set, err := Load([]byte(validDoc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.ID != "s1" || set.Name != "Basics" {
		t.Errorf("set = %+v, want id s1 name Basics", set)
	}
	if len(set.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(set.Questions))
	}
	q := set.Questions[0]
	if q.ID != "q1" || q.CorrectAnswer != "4" || len(q.Options) != 3 {
		t.Errorf("question = %+v", q)
	}
}

func TestRejectedDocumentLeavesRepositoryUnchanged(t *testing.T) {
	repo := quiz.NewMemoryRepository()
	ctx := context.Background()

	// The import flow: only a successfully loaded set is saved.
	for _, doc := range []string{`{"id": 7}`, `{"id": "s1",`} {
		set, err := Load([]byte(doc))
		if err == nil {
			if err := repo.SaveQuestionSet(ctx, set); err != nil {
				t.Fatalf("save: %v", err)
			}
			t.Errorf("expected rejection for %q", doc)
		}
	}

	sets, err := repo.QuestionSets(ctx)
	if err != nil {
		t.Fatalf("question sets: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("expected empty repository after rejection, got %d sets", len(sets))
	}
}
