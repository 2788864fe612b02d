package quiz

import "context"

// Repository provides access to the three stored collections: question
// sets, attempts, and per-question stats. Reads return collections in
// insertion order; an empty store reads as empty slices, never an
// error.
type Repository interface {
	// SaveQuestionSet appends a set to the collection. IDs are not
	// checked for uniqueness; importing the same document twice stores
	// it twice.
	SaveQuestionSet(ctx context.Context, set QuestionSet) error

	// QuestionSets returns all stored sets.
	QuestionSets(ctx context.Context) ([]QuestionSet, error)

	// SaveAttempt appends to the attempt log.
	SaveAttempt(ctx context.Context, att Attempt) error

	// Attempts returns all recorded attempts.
	Attempts(ctx context.Context) ([]Attempt, error)

	// SaveQuestionStats upserts by stats.ID: an existing record with
	// the same ID is replaced, otherwise the record is appended.
	SaveQuestionStats(ctx context.Context, stats QuestionStats) error

	// QuestionStats returns all stored stats records.
	QuestionStats(ctx context.Context) ([]QuestionStats, error)
}
