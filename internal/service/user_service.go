package service

import (
	"log"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// UserService provides user management for administrators.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID returns one user.
func (s *UserService) GetByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// List returns users with pagination.
func (s *UserService) List(page, pageSize int) ([]entity.User, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.userRepo.List(pageSize, offset)
}

// Delete removes a user account.
func (s *UserService) Delete(userID uint) error {
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	log.Printf("[UserService] user #%d deleted", userID)
	return nil
}

// PromoteByEmail grants the admin role to the user with the given email.
func (s *UserService) PromoteByEmail(email string) (*entity.User, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if user.IsAdmin() {
		return user, nil
	}

	if err := s.userRepo.UpdateRole(user.ID, entity.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = entity.RoleAdmin

	log.Printf("[UserService] user #%d (%s) promoted to admin", user.ID, user.Email)
	return user, nil
}
