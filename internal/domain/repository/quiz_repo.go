package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizRepository defines persistence operations for quizzes and their questions.
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// CountQuestions returns the current question count of a quiz without
	// loading the questions themselves.
	CountQuestions(quizID uint) (int, error)
	Update(quiz *entity.Quiz) error
	// ReplaceQuestions swaps the full question set of a quiz in one transaction.
	ReplaceQuestions(quizID uint, questions []entity.Question) error
	List(limit, offset int) ([]entity.Quiz, error)
	ListWithQuestions() ([]entity.Quiz, error)
	Delete(id uint) error
}
