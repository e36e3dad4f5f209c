package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// AttemptStatsRow is one attempt of a user joined with the current question
// count of the referenced quiz. QuestionCount is 0 when the quiz no longer
// exists (broken reference tolerated by the aggregators).
type AttemptStatsRow struct {
	AttemptID     uint
	QuizID        uint
	Score         int
	QuestionCount int
}

// UserAttemptCount is the number of attempts recorded for one user.
type UserAttemptCount struct {
	UserID uint
	Total  int64
}

// AttemptRepository defines persistence operations for quiz attempts.
type AttemptRepository interface {
	Create(attempt *entity.Attempt) error
	// ListStatsByUser returns every attempt of the user joined with its
	// quiz's question count, ordered by creation time.
	ListStatsByUser(userID uint) ([]AttemptStatsRow, error)
	// CountByUser returns attempt counts grouped by user. Attempts whose
	// user no longer exists are excluded from the grouping.
	CountByUser() ([]UserAttemptCount, error)
	ListByUser(userID uint, limit, offset int) ([]entity.Attempt, error)
}
