package quiz

// Question is a single multiple-choice question within a set.
// CorrectAnswer is matched against the chosen option by exact string
// equality. Options keep the canonical order from the imported
// document; display shuffling never touches this slice.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuestionSet is a named, ordered collection of questions. Sets are
// immutable once stored; there are no update or delete operations.
type QuestionSet struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Attempt is the immutable record of one completed quiz run. Date is
// an ISO-8601 (RFC 3339) timestamp; TimeSpent is wall-clock
// milliseconds from session start to completion.
type Attempt struct {
	Date           string `json:"date"`
	QuestionSetID  string `json:"questionSetId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	TimeSpent      int64  `json:"timeSpent"`
}

// QuestionStats is the per-question outcome record, keyed by question
// ID. Saving replaces any existing record with the same ID, so each
// record reflects the most recent answer to that question.
type QuestionStats struct {
	ID            string  `json:"id"`
	QuestionSetID string  `json:"questionSetId"`
	Attempts      int     `json:"attempts"`
	Correct       int     `json:"correct"`
	Incorrect     int     `json:"incorrect"`
	SuccessRate   float64 `json:"successRate"`
}
