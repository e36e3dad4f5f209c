package entity

import (
	"time"
)

// Attempt represents one completed play-through of a quiz by a user.
// Attempts are immutable once created; the question count is derived from the
// referenced quiz at read time, not stored on the record.
type Attempt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TimeSec   int       `gorm:"not null;default:0" json:"time"`
	Score     int       `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"-"`
}

// TableName sets the table name for GORM
func (Attempt) TableName() string {
	return "attempts"
}
