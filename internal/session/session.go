// Package session drives one quiz run: question sequencing, option
// shuffling, answer capture, scoring, and record emission. Transitions
// are plain functions over Session state, independent of any UI.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/nikhilv/quizstack/internal/quiz"
)

// Pick returns a uniform random subset of n questions in random order.
// The input slice is never mutated. When n exceeds the available
// questions, all of them are returned (still shuffled).
func Pick(questions []quiz.Question, n int, rng *rand.Rand) []quiz.Question {
	picked := make([]quiz.Question, len(questions))
	copy(picked, questions)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if n < len(picked) {
		picked = picked[:n]
	}
	return picked
}

// Reveal transitions AwaitingReveal → AwaitingAnswer, computing a
// fresh shuffled copy of the current question's options. The canonical
// option order on the question is never touched; every visit to a
// question reshuffles independently.
func Reveal(s *Session, rng *rand.Rand) {
	if s.Phase != PhaseAwaitingReveal {
		return
	}
	s.Shuffled = shuffleOptions(s.Current().Options, rng)
	s.Phase = PhaseAwaitingAnswer
}

// Select transitions AwaitingAnswer → Answered. Correctness is exact
// string equality against the question's correct answer; the score
// increments by one iff correct. One stats snapshot is emitted per
// answer. Selecting again on an answered question is a no-op.
func Select(ctx context.Context, s *Session, repo quiz.Repository, answer string) error {
	if s.Phase != PhaseAwaitingAnswer || s.HasAnswered {
		return nil
	}

	q := s.Current()
	correct := answer == q.CorrectAnswer

	s.SelectedAnswer = answer
	s.HasAnswered = true
	s.LastCorrect = correct
	s.Phase = PhaseAnswered
	if correct {
		s.Score++
	}

	stats := quiz.QuestionStats{
		ID:            q.ID,
		QuestionSetID: s.QuestionSetID,
		Attempts:      1,
	}
	if correct {
		stats.Correct = 1
		stats.SuccessRate = 100
	} else {
		stats.Incorrect = 1
	}
	if err := repo.SaveQuestionStats(ctx, stats); err != nil {
		return fmt.Errorf("save question stats: %w", err)
	}
	return nil
}

// Advance moves past an answered question. From the last question it
// emits the attempt record (time spent measured from session start)
// and completes the session; otherwise it resets the per-question
// state and returns to AwaitingReveal for the next question.
func Advance(ctx context.Context, s *Session, repo quiz.Repository, now time.Time) error {
	if s.Phase != PhaseAnswered {
		return nil
	}

	if s.OnLastQuestion() {
		att := quiz.Attempt{
			Date:           now.UTC().Format(time.RFC3339),
			QuestionSetID:  s.QuestionSetID,
			Score:          s.Score,
			TotalQuestions: len(s.Questions),
			TimeSpent:      now.Sub(s.StartTime).Milliseconds(),
		}
		if err := repo.SaveAttempt(ctx, att); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}
		s.Phase = PhaseCompleted
		return nil
	}

	s.Index++
	s.SelectedAnswer = ""
	s.HasAnswered = false
	s.Shuffled = nil
	s.Phase = PhaseAwaitingReveal
	return nil
}

// shuffleOptions returns a Fisher–Yates shuffled copy of options.
func shuffleOptions(options []string, rng *rand.Rand) []string {
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewRNG returns a time-seeded rand source for session use.
func NewRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
