package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikhilv/quizstack/internal/quiz"
)

// Phase is the per-question lifecycle state of a session.
type Phase int

const (
	// PhaseAwaitingReveal: the question text is shown, options hidden.
	PhaseAwaitingReveal Phase = iota

	// PhaseAwaitingAnswer: options are revealed in shuffled order.
	PhaseAwaitingAnswer

	// PhaseAnswered: an answer is locked in, explanation visible.
	PhaseAnswered

	// PhaseCompleted: the last question was acknowledged. Terminal.
	PhaseCompleted
)

// Session tracks one quiz run over a picked subset of a question set.
// It is transient: nothing here is persisted. Finalized records are
// handed to the repository at well-defined points (one stats record
// per answer, one attempt at completion).
type Session struct {
	// ID identifies this run for logging and debugging.
	ID string

	// QuestionSetID references the set the questions came from.
	QuestionSetID string

	// Questions is the picked subset served this run, in serve order.
	Questions []quiz.Question

	// Index is the current question position.
	Index int

	// Phase is the current lifecycle phase.
	Phase Phase

	// Shuffled holds the current question's options in display order.
	// Recomputed on every Reveal; nil outside AwaitingAnswer/Answered.
	Shuffled []string

	// SelectedAnswer is the locked-in choice for the current question.
	SelectedAnswer string

	// HasAnswered guards against re-selection on the current question.
	HasAnswered bool

	// LastCorrect records whether the most recent answer was correct.
	LastCorrect bool

	// Score is the running count of correct answers.
	Score int

	// StartTime is captured once, at construction.
	StartTime time.Time
}

// New creates a session over the given questions. The caller must
// guarantee a non-empty question list before starting.
func New(questionSetID string, questions []quiz.Question, now time.Time) *Session {
	return &Session{
		ID:            uuid.New().String(),
		QuestionSetID: questionSetID,
		Questions:     questions,
		Phase:         PhaseAwaitingReveal,
		StartTime:     now,
	}
}

// Current returns the active question.
func (s *Session) Current() quiz.Question {
	return s.Questions[s.Index]
}

// OnLastQuestion reports whether the active question is the final one.
func (s *Session) OnLastQuestion() bool {
	return s.Index == len(s.Questions)-1
}
