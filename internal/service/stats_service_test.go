package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ============================================================================
// Mocks for StatsService
// ============================================================================

type MockUserRepoForStatsService struct {
	mock.Mock
}

func (m *MockUserRepoForStatsService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForStatsService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForStatsService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForStatsService) UpdateRole(userID uint, role string) error {
	args := m.Called(userID, role)
	return args.Error(0)
}

func (m *MockUserRepoForStatsService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepoForStatsService) List(limit, offset int) ([]entity.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForStatsService) ListNames() ([]entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

type MockQuizRepoForStatsService struct {
	mock.Mock
}

func (m *MockQuizRepoForStatsService) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepoForStatsService) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForStatsService) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForStatsService) CountQuestions(quizID uint) (int, error) {
	args := m.Called(quizID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizRepoForStatsService) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepoForStatsService) ReplaceQuestions(quizID uint, questions []entity.Question) error {
	args := m.Called(quizID, questions)
	return args.Error(0)
}

func (m *MockQuizRepoForStatsService) List(limit, offset int) ([]entity.Quiz, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForStatsService) ListWithQuestions() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepoForStatsService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockAttemptRepoForStatsService struct {
	mock.Mock
}

func (m *MockAttemptRepoForStatsService) Create(attempt *entity.Attempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepoForStatsService) ListStatsByUser(userID uint) ([]repository.AttemptStatsRow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.AttemptStatsRow), args.Error(1)
}

func (m *MockAttemptRepoForStatsService) CountByUser() ([]repository.UserAttemptCount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserAttemptCount), args.Error(1)
}

func (m *MockAttemptRepoForStatsService) ListByUser(userID uint, limit, offset int) ([]entity.Attempt, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Attempt), args.Error(1)
}

type MockCacheRepoForStatsService struct {
	mock.Mock
}

func (m *MockCacheRepoForStatsService) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepoForStatsService) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepoForStatsService) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepoForStatsService) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepoForStatsService) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepoForStatsService) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func createTestStatsService(
	userRepo *MockUserRepoForStatsService,
	quizRepo *MockQuizRepoForStatsService,
	attemptRepo *MockAttemptRepoForStatsService,
) *StatsService {
	// cacheRepo is nil so tests exercise the direct computation path.
	return NewStatsService(userRepo, quizRepo, attemptRepo, nil)
}

// ============================================================================
// ComputeUserStats
// ============================================================================

func TestStatsService_ComputeUserStats_NoAttempts(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("GetByID", uint(7)).Return(&entity.User{ID: 7, Name: "Ana"}, nil)
	mockAttemptRepo.On("ListStatsByUser", uint(7)).Return([]repository.AttemptStatsRow{}, nil)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	stats, err := statsService.ComputeUserStats(7)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGames, "a user without attempts has 0 games")
	assert.Equal(t, 0.0, stats.MeanCorrect, "means are 0, not NaN, without attempts")
	assert.Equal(t, 0.0, stats.MeanIncorrect)
	mockUserRepo.AssertExpectations(t)
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_ComputeUserStats_Means(t *testing.T) {
	// Arrange: two attempts, scores 3/5 and 4/4
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	mockAttemptRepo.On("ListStatsByUser", uint(1)).Return([]repository.AttemptStatsRow{
		{AttemptID: 1, QuizID: 1, Score: 3, QuestionCount: 5},
		{AttemptID: 2, QuizID: 2, Score: 4, QuestionCount: 4},
	}, nil)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	stats, err := statsService.ComputeUserStats(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalGames)
	assert.InDelta(t, 3.5, stats.MeanCorrect, 1e-9, "(3+4)/2")
	assert.InDelta(t, 1.0, stats.MeanIncorrect, 1e-9, "(2+0)/2")
	mockUserRepo.AssertExpectations(t)
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_ComputeUserStats_UserNotFound(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	stats, err := statsService.ComputeUserStats(99)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, stats)
	mockAttemptRepo.AssertNotCalled(t, "ListStatsByUser", mock.Anything)
	mockUserRepo.AssertExpectations(t)
}

func TestStatsService_ComputeUserStats_DeletedQuizClamped(t *testing.T) {
	// Arrange: the quiz behind the attempt is gone, so its question count
	// resolves to 0 while the stored score stays 4. The incorrect count must
	// clamp to 0 instead of going negative.
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1}, nil)
	mockAttemptRepo.On("ListStatsByUser", uint(1)).Return([]repository.AttemptStatsRow{
		{AttemptID: 1, QuizID: 9, Score: 4, QuestionCount: 0},
	}, nil)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	stats, err := statsService.ComputeUserStats(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalGames, "the attempt still counts as a played game")
	assert.Equal(t, 4.0, stats.MeanCorrect)
	assert.Equal(t, 0.0, stats.MeanIncorrect, "incorrect count is clamped, never negative")
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_ComputeUserStats_ReadOnly(t *testing.T) {
	// Two consecutive computations over the same data give the same result
	// and never write anything.
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	rows := []repository.AttemptStatsRow{
		{AttemptID: 1, QuizID: 1, Score: 2, QuestionCount: 3},
	}
	mockUserRepo.On("GetByID", uint(5)).Return(&entity.User{ID: 5}, nil).Twice()
	mockAttemptRepo.On("ListStatsByUser", uint(5)).Return(rows, nil).Twice()

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	first, err1 := statsService.ComputeUserStats(5)
	second, err2 := statsService.ComputeUserStats(5)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	mockAttemptRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockUserRepo.AssertExpectations(t)
	mockAttemptRepo.AssertExpectations(t)
}

// ============================================================================
// ComputeRanking
// ============================================================================

func TestStatsService_ComputeRanking_OrderAndZeroAttemptUsers(t *testing.T) {
	// Arrange: three users with 5, 0 and 2 games
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("ListNames").Return([]entity.User{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Bruno"},
		{ID: 3, Name: "Carla"},
	}, nil)
	mockAttemptRepo.On("CountByUser").Return([]repository.UserAttemptCount{
		{UserID: 1, Total: 5},
		{UserID: 3, Total: 2},
	}, nil)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	ranking, err := statsService.ComputeRanking()

	// Assert
	require.NoError(t, err)
	require.Len(t, ranking, 3, "users without attempts are still listed")
	assert.Equal(t, uint(1), ranking[0].UserID)
	assert.Equal(t, int64(5), ranking[0].TotalGames)
	assert.Equal(t, uint(3), ranking[1].UserID)
	assert.Equal(t, int64(2), ranking[1].TotalGames)
	assert.Equal(t, uint(2), ranking[2].UserID)
	assert.Equal(t, int64(0), ranking[2].TotalGames)
	mockUserRepo.AssertExpectations(t)
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_ComputeRanking_StableTieBreak(t *testing.T) {
	// Arrange: equal counts keep the id-ascending order of the user listing
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockUserRepo.On("ListNames").Return([]entity.User{
		{ID: 10, Name: "First"},
		{ID: 20, Name: "Second"},
		{ID: 30, Name: "Third"},
	}, nil)
	mockAttemptRepo.On("CountByUser").Return([]repository.UserAttemptCount{
		{UserID: 10, Total: 3},
		{UserID: 20, Total: 3},
		{UserID: 30, Total: 3},
	}, nil)

	statsService := createTestStatsService(mockUserRepo, nil, mockAttemptRepo)

	// Act
	ranking, err := statsService.ComputeRanking()

	// Assert
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, uint(10), ranking[0].UserID)
	assert.Equal(t, uint(20), ranking[1].UserID)
	assert.Equal(t, uint(30), ranking[2].UserID)
}

func TestStatsService_ComputeRanking_CacheHit(t *testing.T) {
	// Arrange: a warm cache short-circuits the database entirely
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)
	mockCacheRepo := new(MockCacheRepoForStatsService)

	cached := []RankingEntry{{UserID: 1, Name: "Ana", TotalGames: 5}}
	mockCacheRepo.On("GetJSON", rankingCacheKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*[]RankingEntry)
		*dest = cached
	}).Return(nil)

	statsService := NewStatsService(mockUserRepo, nil, mockAttemptRepo, mockCacheRepo)

	// Act
	ranking, err := statsService.ComputeRanking()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cached, ranking)
	mockUserRepo.AssertNotCalled(t, "ListNames")
	mockAttemptRepo.AssertNotCalled(t, "CountByUser")
	mockCacheRepo.AssertExpectations(t)
}

func TestStatsService_ComputeRanking_CacheMissFillsCache(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)
	mockCacheRepo := new(MockCacheRepoForStatsService)

	mockCacheRepo.On("GetJSON", rankingCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	mockUserRepo.On("ListNames").Return([]entity.User{{ID: 1, Name: "Ana"}}, nil)
	mockAttemptRepo.On("CountByUser").Return([]repository.UserAttemptCount{{UserID: 1, Total: 2}}, nil)
	mockCacheRepo.On("SetJSON", rankingCacheKey, mock.Anything, rankingCacheTTL).Return(nil)

	statsService := NewStatsService(mockUserRepo, nil, mockAttemptRepo, mockCacheRepo)

	// Act
	ranking, err := statsService.ComputeRanking()

	// Assert
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, int64(2), ranking[0].TotalGames)
	mockCacheRepo.AssertExpectations(t)
}

// ============================================================================
// SubmitAttempt
// ============================================================================

func TestStatsService_SubmitAttempt_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockQuizRepo.On("CountQuestions", uint(3)).Return(5, nil)
	mockAttemptRepo.On("Create", mock.MatchedBy(func(a *entity.Attempt) bool {
		return a.UserID == 42 && a.QuizID == 3 && a.Score == 4 && a.TimeSec == 120
	})).Return(nil)

	statsService := createTestStatsService(nil, mockQuizRepo, mockAttemptRepo)

	// Act
	attempt, err := statsService.SubmitAttempt(42, 3, 120, 4)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, uint(42), attempt.UserID)
	assert.Equal(t, 4, attempt.Score)
	mockQuizRepo.AssertExpectations(t)
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_SubmitAttempt_ScoreAboveQuestionCount(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockQuizRepo.On("CountQuestions", uint(3)).Return(5, nil)

	statsService := createTestStatsService(nil, mockQuizRepo, mockAttemptRepo)

	// Act
	attempt, err := statsService.SubmitAttempt(42, 3, 120, 6)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, attempt)
	mockAttemptRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestStatsService_SubmitAttempt_NegativeValues(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockQuizRepo.On("CountQuestions", uint(3)).Return(5, nil)

	statsService := createTestStatsService(nil, mockQuizRepo, mockAttemptRepo)

	// Act & Assert: negative time
	_, err := statsService.SubmitAttempt(42, 3, -1, 4)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Act & Assert: negative score
	_, err = statsService.SubmitAttempt(42, 3, 120, -1)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mockAttemptRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestStatsService_SubmitAttempt_QuizNotFound(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockQuizRepo.On("CountQuestions", uint(99)).Return(0, apperrors.ErrNotFound)

	statsService := createTestStatsService(nil, mockQuizRepo, mockAttemptRepo)

	// Act
	attempt, err := statsService.SubmitAttempt(42, 99, 120, 0)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, attempt)
	mockAttemptRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestStatsService_SubmitAttempt_InvalidatesRankingCache(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepoForStatsService)
	mockAttemptRepo := new(MockAttemptRepoForStatsService)
	mockCacheRepo := new(MockCacheRepoForStatsService)

	mockQuizRepo.On("CountQuestions", uint(1)).Return(3, nil)
	mockAttemptRepo.On("Create", mock.Anything).Return(nil)
	mockCacheRepo.On("Delete", rankingCacheKey).Return(nil)

	statsService := NewStatsService(nil, mockQuizRepo, mockAttemptRepo, mockCacheRepo)

	// Act
	_, err := statsService.SubmitAttempt(1, 1, 30, 2)

	// Assert
	require.NoError(t, err)
	mockCacheRepo.AssertExpectations(t)
}

// ============================================================================
// GetUserAttempts
// ============================================================================

func TestStatsService_GetUserAttempts_PageValidation(t *testing.T) {
	// Arrange: page < 1 corrects to 1, pageSize < 1 corrects to 10
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockAttemptRepo.On("ListByUser", uint(1), 10, 0).Return([]entity.Attempt{
		{ID: 1, UserID: 1, QuizID: 1, Score: 2},
	}, nil)

	statsService := createTestStatsService(nil, nil, mockAttemptRepo)

	// Act
	attempts, err := statsService.GetUserAttempts(1, 0, 0)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, attempts)
	mockAttemptRepo.AssertExpectations(t)
}

func TestStatsService_GetUserAttempts_MaxPageSize(t *testing.T) {
	// Arrange: pageSize > 100 corrects to 100
	mockAttemptRepo := new(MockAttemptRepoForStatsService)

	mockAttemptRepo.On("ListByUser", uint(1), 100, 100).Return([]entity.Attempt{}, nil)

	statsService := createTestStatsService(nil, nil, mockAttemptRepo)

	// Act
	_, err := statsService.GetUserAttempts(1, 2, 500)

	// Assert
	require.NoError(t, err)
	mockAttemptRepo.AssertExpectations(t)
}
