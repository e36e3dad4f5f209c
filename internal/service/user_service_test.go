package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func TestUserService_List_PageValidation(t *testing.T) {
	// Arrange: page < 1 corrects to 1, pageSize < 1 corrects to 10
	mockUserRepo := new(MockUserRepoForStatsService)

	mockUserRepo.On("List", 10, 0).Return([]entity.User{{ID: 1, Name: "Ana"}}, nil)

	userService := NewUserService(mockUserRepo)

	// Act
	users, err := userService.List(0, 0)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, users)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_PromoteByEmail_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)

	mockUserRepo.On("GetByEmail", "ana@example.com").Return(&entity.User{
		ID:    1,
		Email: "ana@example.com",
		Role:  entity.RoleUser,
	}, nil)
	mockUserRepo.On("UpdateRole", uint(1), entity.RoleAdmin).Return(nil)

	userService := NewUserService(mockUserRepo)

	// Act: email is normalized before lookup
	user, err := userService.PromoteByEmail(" Ana@Example.com ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	mockUserRepo.AssertExpectations(t)
}

func TestUserService_PromoteByEmail_AlreadyAdmin(t *testing.T) {
	// Promoting an admin is a no-op, not an error.
	mockUserRepo := new(MockUserRepoForStatsService)

	mockUserRepo.On("GetByEmail", "root@example.com").Return(&entity.User{
		ID:    1,
		Email: "root@example.com",
		Role:  entity.RoleAdmin,
	}, nil)

	userService := NewUserService(mockUserRepo)

	// Act
	user, err := userService.PromoteByEmail("root@example.com")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	mockUserRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
}

func TestUserService_PromoteByEmail_UnknownEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)

	mockUserRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	userService := NewUserService(mockUserRepo)

	// Act
	_, err := userService.PromoteByEmail("ghost@example.com")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserService_Delete(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)

	mockUserRepo.On("Delete", uint(7)).Return(nil)

	userService := NewUserService(mockUserRepo)

	// Act & Assert
	require.NoError(t, userService.Delete(7))
	mockUserRepo.AssertExpectations(t)
}
