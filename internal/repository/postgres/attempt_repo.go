package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// AttemptRepo implements repository.AttemptRepository.
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo creates a new attempt repository.
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create inserts a new attempt record.
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	return r.db.Create(attempt).Error
}

// ListStatsByUser returns every attempt of the user joined with the current
// question count of the referenced quiz. A LEFT JOIN keeps attempts whose
// quiz has been deleted; COALESCE turns their count into 0 so a single broken
// reference can not fail the whole aggregation.
func (r *AttemptRepo) ListStatsByUser(userID uint) ([]repository.AttemptStatsRow, error) {
	var rows []repository.AttemptStatsRow
	err := r.db.Table("attempts").
		Select(`
			attempts.id AS attempt_id,
			attempts.quiz_id,
			attempts.score,
			COALESCE(qc.question_count, 0) AS question_count
		`).
		Joins(`LEFT JOIN (
			SELECT questions.quiz_id, COUNT(*) AS question_count
			FROM questions
			GROUP BY questions.quiz_id
		) qc ON qc.quiz_id = attempts.quiz_id`).
		Where("attempts.user_id = ?", userID).
		Order("attempts.created_at ASC, attempts.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByUser returns attempt counts grouped by user. The INNER JOIN on users
// drops attempts whose user reference is broken.
func (r *AttemptRepo) CountByUser() ([]repository.UserAttemptCount, error) {
	var counts []repository.UserAttemptCount
	err := r.db.Table("attempts").
		Select("attempts.user_id, COUNT(*) AS total").
		Joins("JOIN users ON users.id = attempts.user_id").
		Group("attempts.user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// ListByUser returns the raw attempts of a user with pagination, newest first.
func (r *AttemptRepo) ListByUser(userID uint, limit, offset int) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&attempts).Error
	return attempts, err
}
