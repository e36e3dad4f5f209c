package entity

import (
	"errors"
	"time"
)

// Quiz represents a named ordered set of multiple-choice questions.
type Quiz struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:100;not null" json:"title"`
	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionCount returns the number of questions currently attached to the quiz.
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// Validate checks the quiz and all its questions.
func (q *Quiz) Validate() error {
	if q.Title == "" {
		return errors.New("quiz title is required")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
