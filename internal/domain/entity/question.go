package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringArray is a custom type stored as JSONB.
type StringArray []string

// Scan implements sql.Scanner for StringArray.
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer for StringArray.
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // empty JSON array instead of null
	}
	return json.Marshal(o)
}

// Question represents one multiple-choice question of a quiz.
type Question struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	QuizID       uint        `gorm:"not null;index" json:"quiz_id"`
	Text         string      `gorm:"size:500;not null" json:"text"`
	Options      StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int         `gorm:"not null" json:"-"` // hidden from clients
	Position     int         `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName sets the table name for GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect reports whether the selected option is the correct one.
func (q *Question) IsCorrect(selected int) bool {
	return selected == q.CorrectIndex
}

// OptionsCount returns the number of answer options.
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption reports whether the selected index refers to an option.
func (q *Question) IsValidOption(selected int) bool {
	return selected >= 0 && selected < len(q.Options)
}

// Validate checks the question invariants: non-empty text, at least two
// options and a correct index inside the option range.
func (q *Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question needs at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range [0,%d)", q.CorrectIndex, len(q.Options))
	}
	return nil
}
