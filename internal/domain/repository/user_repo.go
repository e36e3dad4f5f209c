package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdateRole(userID uint, role string) error
	Delete(id uint) error
	List(limit, offset int) ([]entity.User, error)
	// ListNames returns id and name of every user ordered by id, for the
	// ranking aggregator. Credential fields are never selected.
	ListNames() ([]entity.User, error)
}
