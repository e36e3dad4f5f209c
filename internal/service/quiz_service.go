package service

import (
	"fmt"
	"log"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizService provides quiz catalog management.
type QuizService struct {
	quizRepo repository.QuizRepository
}

// NewQuizService creates a new quiz service.
func NewQuizService(quizRepo repository.QuizRepository) *QuizService {
	return &QuizService{
		quizRepo: quizRepo,
	}
}

// CreateQuiz validates and persists a new quiz with its questions.
func (s *QuizService) CreateQuiz(title string, questions []entity.Question) (*entity.Quiz, error) {
	quiz := &entity.Quiz{
		Title:     title,
		Questions: questions,
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Position = i
	}

	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		log.Printf("[QuizService] failed to create quiz %q: %v", title, err)
		return nil, err
	}

	return quiz, nil
}

// GetQuiz returns a quiz with its questions.
func (s *QuizService) GetQuiz(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes returns all quizzes with their questions.
func (s *QuizService) ListQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.ListWithQuestions()
}

// UpdateQuiz replaces the title and question set of an existing quiz.
// Attempts recorded against the quiz keep referencing it; their derived
// question count follows the new question set (read-time derivation).
func (s *QuizService) UpdateQuiz(quizID uint, title string, questions []entity.Question) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	updated := &entity.Quiz{
		ID:        quiz.ID,
		Title:     title,
		Questions: questions,
		CreatedAt: quiz.CreatedAt,
	}
	for i := range updated.Questions {
		updated.Questions[i].Position = i
	}
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	quiz.Title = title
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, err
	}
	if err := s.quizRepo.ReplaceQuestions(quizID, questions); err != nil {
		return nil, err
	}

	return s.quizRepo.GetWithQuestions(quizID)
}

// DeleteQuiz removes a quiz and its questions. Existing attempts are kept;
// the stats aggregator treats their question count as 0 from then on.
func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}
	log.Printf("[QuizService] quiz #%d deleted", quizID)
	return nil
}
