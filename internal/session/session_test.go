package session

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/nikhilv/quizstack/internal/quiz"
)

func testQuestions() []quiz.Question {
	return []quiz.Question{
		{
			ID:            "q1",
			Text:          "2+2?",
			Options:       []string{"3", "4", "5"},
			CorrectAnswer: "4",
			Explanation:   "Arithmetic",
		},
		{
			ID:            "q2",
			Text:          "Capital of France?",
			Options:       []string{"Paris", "Lyon", "Nice"},
			CorrectAnswer: "Paris",
			Explanation:   "Geography",
		},
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func startedSession(t *testing.T, questions []quiz.Question) (*Session, *quiz.MemoryRepository) {
	t.Helper()
	repo := quiz.NewMemoryRepository()
	s := New("s1", questions, time.Now())
	return s, repo
}

func TestNew_InitialState(t *testing.T) {
	s, _ := startedSession(t, testQuestions())

	if s.Phase != PhaseAwaitingReveal {
		t.Errorf("phase = %v, want PhaseAwaitingReveal", s.Phase)
	}
	if s.Index != 0 || s.Score != 0 || s.HasAnswered {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if s.ID == "" {
		t.Error("expected non-empty session id")
	}
}

func TestReveal_ShuffleIsPermutation(t *testing.T) {
	questions := testQuestions()
	rng := testRNG()

	// Every shuffle invocation must yield a reordering of the
	// canonical options with no additions, removals, or duplicates.
	for i := 0; i < 50; i++ {
		s, _ := startedSession(t, questions)
		Reveal(s, rng)

		if s.Phase != PhaseAwaitingAnswer {
			t.Fatalf("phase = %v, want PhaseAwaitingAnswer", s.Phase)
		}

		got := append([]string(nil), s.Shuffled...)
		want := append([]string(nil), questions[0].Options...)
		sort.Strings(got)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Fatalf("shuffled length = %d, want %d", len(got), len(want))
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("shuffle is not a permutation: %v vs %v", s.Shuffled, questions[0].Options)
			}
		}
	}
}

func TestReveal_DoesNotMutateCanonicalOrder(t *testing.T) {
	questions := testQuestions()
	s, _ := startedSession(t, questions)

	Reveal(s, testRNG())

	want := []string{"3", "4", "5"}
	for i, opt := range s.Current().Options {
		if opt != want[i] {
			t.Fatalf("canonical options mutated: %v", s.Current().Options)
		}
	}
}

func TestSelect_CorrectAnswer(t *testing.T) {
	s, repo := startedSession(t, testQuestions())
	ctx := context.Background()
	Reveal(s, testRNG())

	if err := Select(ctx, s, repo, "4"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if s.Phase != PhaseAnswered {
		t.Errorf("phase = %v, want PhaseAnswered", s.Phase)
	}
	if s.Score != 1 || !s.LastCorrect {
		t.Errorf("score = %d, lastCorrect = %v, want 1/true", s.Score, s.LastCorrect)
	}

	stats, err := repo.QuestionStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 stats record, got %d", len(stats))
	}
	want := quiz.QuestionStats{ID: "q1", QuestionSetID: "s1", Attempts: 1, Correct: 1, Incorrect: 0, SuccessRate: 100}
	if stats[0] != want {
		t.Errorf("stats = %+v, want %+v", stats[0], want)
	}
}

func TestSelect_WrongAnswer(t *testing.T) {
	s, repo := startedSession(t, testQuestions())
	ctx := context.Background()
	Reveal(s, testRNG())

	if err := Select(ctx, s, repo, "3"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if s.Score != 0 || s.LastCorrect {
		t.Errorf("score = %d, lastCorrect = %v, want 0/false", s.Score, s.LastCorrect)
	}

	stats, _ := repo.QuestionStats(ctx)
	want := quiz.QuestionStats{ID: "q1", QuestionSetID: "s1", Attempts: 1, Correct: 0, Incorrect: 1, SuccessRate: 0}
	if len(stats) != 1 || stats[0] != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestSelect_Idempotent(t *testing.T) {
	s, repo := startedSession(t, testQuestions())
	ctx := context.Background()
	Reveal(s, testRNG())

	if err := Select(ctx, s, repo, "3"); err != nil {
		t.Fatalf("select: %v", err)
	}
	// Re-selecting after an answer is locked in changes nothing.
	if err := Select(ctx, s, repo, "4"); err != nil {
		t.Fatalf("re-select: %v", err)
	}

	if s.SelectedAnswer != "3" {
		t.Errorf("selectedAnswer = %q, want %q", s.SelectedAnswer, "3")
	}
	if s.Score != 0 {
		t.Errorf("score = %d, want 0", s.Score)
	}

	stats, _ := repo.QuestionStats(ctx)
	if len(stats) != 1 || stats[0].Incorrect != 1 {
		t.Errorf("expected single unchanged stats record, got %+v", stats)
	}
}

func TestSelect_BeforeRevealIsNoOp(t *testing.T) {
	s, repo := startedSession(t, testQuestions())

	if err := Select(context.Background(), s, repo, "4"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if s.Phase != PhaseAwaitingReveal || s.Score != 0 {
		t.Errorf("expected no transition before reveal, got %+v", s)
	}
}

func TestAdvance_NextQuestion(t *testing.T) {
	s, repo := startedSession(t, testQuestions())
	ctx := context.Background()
	rng := testRNG()

	Reveal(s, rng)
	if err := Select(ctx, s, repo, "4"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := Advance(ctx, s, repo, time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if s.Phase != PhaseAwaitingReveal {
		t.Errorf("phase = %v, want PhaseAwaitingReveal", s.Phase)
	}
	if s.Index != 1 || s.HasAnswered || s.SelectedAnswer != "" || s.Shuffled != nil {
		t.Errorf("per-question state not reset: %+v", s)
	}

	// No attempt yet: the session is still running.
	attempts, _ := repo.Attempts(ctx)
	if len(attempts) != 0 {
		t.Errorf("expected no attempt mid-session, got %d", len(attempts))
	}
}

func TestAdvance_CompletionEmitsAttempt(t *testing.T) {
	questions := testQuestions()[:1]
	repo := quiz.NewMemoryRepository()
	ctx := context.Background()
	rng := testRNG()

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	s := New("s1", questions, start)
	Reveal(s, rng)
	if err := Select(ctx, s, repo, "4"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := Advance(ctx, s, repo, end); err != nil {
		t.Fatalf("advance: %v", err)
	}

	if s.Phase != PhaseCompleted {
		t.Fatalf("phase = %v, want PhaseCompleted", s.Phase)
	}

	attempts, err := repo.Attempts(ctx)
	if err != nil {
		t.Fatalf("attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	att := attempts[0]
	if att.QuestionSetID != "s1" || att.Score != 1 || att.TotalQuestions != 1 {
		t.Errorf("attempt = %+v, want s1/1/1", att)
	}
	if att.TimeSpent != 90_000 {
		t.Errorf("timeSpent = %d, want 90000", att.TimeSpent)
	}
	if att.Date != end.Format(time.RFC3339) {
		t.Errorf("date = %q, want %q", att.Date, end.Format(time.RFC3339))
	}
	if att.Score < 0 || att.Score > att.TotalQuestions {
		t.Errorf("score %d outside [0, %d]", att.Score, att.TotalQuestions)
	}
}

func TestAdvance_WrongAnswerScenarioEmitsZeroScore(t *testing.T) {
	questions := testQuestions()[:1]
	repo := quiz.NewMemoryRepository()
	ctx := context.Background()

	s := New("s1", questions, time.Now())
	Reveal(s, testRNG())
	if err := Select(ctx, s, repo, "3"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := Advance(ctx, s, repo, time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}

	attempts, _ := repo.Attempts(ctx)
	if len(attempts) != 1 || attempts[0].Score != 0 {
		t.Errorf("attempts = %+v, want single zero-score attempt", attempts)
	}
}

func TestAdvance_FullRunScoreBounds(t *testing.T) {
	questions := testQuestions()
	repo := quiz.NewMemoryRepository()
	ctx := context.Background()
	rng := testRNG()

	s := New("s1", questions, time.Now())
	answers := []string{"4", "Lyon"}
	for i := range questions {
		Reveal(s, rng)
		if err := Select(ctx, s, repo, answers[i]); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
		if err := Advance(ctx, s, repo, time.Now()); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	attempts, _ := repo.Attempts(ctx)
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	att := attempts[0]
	if att.TotalQuestions != len(questions) {
		t.Errorf("totalQuestions = %d, want %d", att.TotalQuestions, len(questions))
	}
	if att.Score != 1 {
		t.Errorf("score = %d, want 1", att.Score)
	}
}

func TestPick_SubsetSizeAndImmutability(t *testing.T) {
	questions := testQuestions()
	rng := testRNG()

	picked := Pick(questions, 1, rng)
	if len(picked) != 1 {
		t.Fatalf("expected 1 picked question, got %d", len(picked))
	}

	// Asking for more than available returns everything.
	all := Pick(questions, 10, rng)
	if len(all) != len(questions) {
		t.Fatalf("expected %d questions, got %d", len(questions), len(all))
	}

	// Input order untouched.
	if questions[0].ID != "q1" || questions[1].ID != "q2" {
		t.Errorf("input slice mutated: %v, %v", questions[0].ID, questions[1].ID)
	}
}

func TestPick_IsPermutationSubset(t *testing.T) {
	questions := testQuestions()
	seen := map[string]bool{}
	for _, q := range questions {
		seen[q.ID] = true
	}

	for i := 0; i < 20; i++ {
		picked := Pick(questions, 2, testRNG())
		ids := map[string]bool{}
		for _, q := range picked {
			if !seen[q.ID] {
				t.Fatalf("picked unknown question %q", q.ID)
			}
			if ids[q.ID] {
				t.Fatalf("question %q picked twice", q.ID)
			}
			ids[q.ID] = true
		}
	}
}
