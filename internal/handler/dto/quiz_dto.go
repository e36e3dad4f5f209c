package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionResponse is a question as serialized for clients. The correct index
// is only present in admin responses.
type QuestionResponse struct {
	ID           uint      `json:"id"`
	QuizID       uint      `json:"quiz_id"`
	Text         string    `json:"text"`
	Options      []string  `json:"options"`
	CorrectIndex *int      `json:"correct_index,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// QuizResponse is a quiz as serialized for clients.
type QuizResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewQuizResponse builds the quiz DTO. includeCorrect controls whether the
// correct option index is exposed (admin callers only).
func NewQuizResponse(quiz *entity.Quiz, includeCorrect bool) *QuizResponse {
	resp := &QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     quiz.CreatedAt,
		UpdatedAt:     quiz.UpdatedAt,
	}

	if len(quiz.Questions) > 0 {
		resp.Questions = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			q := &quiz.Questions[i]
			qr := QuestionResponse{
				ID:        q.ID,
				QuizID:    q.QuizID,
				Text:      q.Text,
				Options:   q.Options,
				CreatedAt: q.CreatedAt,
				UpdatedAt: q.UpdatedAt,
			}
			if includeCorrect {
				idx := q.CorrectIndex
				qr.CorrectIndex = &idx
			}
			resp.Questions[i] = qr
		}
	}

	return resp
}

// NewListQuizResponse builds DTOs for a quiz listing.
func NewListQuizResponse(quizzes []entity.Quiz, includeCorrect bool) []*QuizResponse {
	out := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		out[i] = NewQuizResponse(&quizzes[i], includeCorrect)
	}
	return out
}
