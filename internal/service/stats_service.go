package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const (
	rankingCacheKey = "ranking:v1"
	rankingCacheTTL = 30 * time.Second
)

// UserStats is the per-user aggregate over all attempt records.
type UserStats struct {
	TotalGames    int
	MeanCorrect   float64
	MeanIncorrect float64
}

// RankingEntry is one row of the leaderboard.
type RankingEntry struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	TotalGames int64  `json:"total_games"`
}

// StatsService aggregates attempt records into per-user statistics and the
// public ranking, and records new attempts.
type StatsService struct {
	userRepo    repository.UserRepository
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	cacheRepo   repository.CacheRepository // optional, nil disables caching
}

// NewStatsService creates a new stats service.
func NewStatsService(
	userRepo repository.UserRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	cacheRepo repository.CacheRepository,
) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		cacheRepo:   cacheRepo,
	}
}

// ComputeUserStats returns total games played and mean correct/incorrect
// answer counts across all attempts of the user. The question count of each
// attempt is resolved against the quiz's current question set; a deleted quiz
// contributes 0 questions, and a negative incorrect count is clamped to 0 so
// one corrupt record can not poison the aggregate. Read-only.
func (s *StatsService) ComputeUserStats(userID uint) (*UserStats, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	rows, err := s.attemptRepo.ListStatsByUser(userID)
	if err != nil {
		log.Printf("[StatsService] failed to load attempts for user #%d: %v", userID, err)
		return nil, err
	}

	stats := &UserStats{TotalGames: len(rows)}
	if len(rows) == 0 {
		return stats, nil
	}

	var sumCorrect, sumIncorrect int
	for _, row := range rows {
		correct := row.Score
		if correct < 0 {
			correct = 0
		}
		incorrect := row.QuestionCount - correct
		if incorrect < 0 {
			incorrect = 0
		}
		sumCorrect += correct
		sumIncorrect += incorrect
	}

	stats.MeanCorrect = float64(sumCorrect) / float64(stats.TotalGames)
	stats.MeanIncorrect = float64(sumIncorrect) / float64(stats.TotalGames)
	return stats, nil
}

// ComputeRanking returns all users ordered by total games played, descending.
// Users without attempts appear with 0 games; ties keep the source order of
// the user listing (id ASC). The result is cached in Redis for a short TTL;
// cache failures degrade to a direct computation.
func (s *StatsService) ComputeRanking() ([]RankingEntry, error) {
	if s.cacheRepo != nil {
		var cached []RankingEntry
		err := s.cacheRepo.GetJSON(rankingCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[StatsService] ranking cache read failed: %v", err)
		}
	}

	users, err := s.userRepo.ListNames()
	if err != nil {
		return nil, err
	}

	counts, err := s.attemptRepo.CountByUser()
	if err != nil {
		return nil, err
	}

	countByUser := make(map[uint]int64, len(counts))
	for _, c := range counts {
		countByUser[c.UserID] = c.Total
	}

	ranking := make([]RankingEntry, len(users))
	for i, user := range users {
		ranking[i] = RankingEntry{
			UserID:     user.ID,
			Name:       user.Name,
			TotalGames: countByUser[user.ID],
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalGames > ranking[j].TotalGames
	})

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(rankingCacheKey, ranking, rankingCacheTTL); err != nil {
			log.Printf("[StatsService] ranking cache write failed: %v", err)
		}
	}

	return ranking, nil
}

// SubmitAttempt validates and records one completed play-through for the
// user. The score is bounded server-side against the quiz's current question
// count instead of being trusted from the client.
func (s *StatsService) SubmitAttempt(userID, quizID uint, timeSec, score int) (*entity.Attempt, error) {
	questionCount, err := s.quizRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}

	if timeSec < 0 {
		return nil, fmt.Errorf("%w: time must be non-negative", apperrors.ErrValidation)
	}
	if score < 0 || score > questionCount {
		return nil, fmt.Errorf("%w: score %d out of range [0,%d]", apperrors.ErrValidation, score, questionCount)
	}

	attempt := &entity.Attempt{
		QuizID:  quizID,
		UserID:  userID,
		TimeSec: timeSec,
		Score:   score,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		log.Printf("[StatsService] failed to save attempt for user #%d, quiz #%d: %v", userID, quizID, err)
		return nil, err
	}

	// The cached leaderboard is stale now.
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(rankingCacheKey); err != nil {
			log.Printf("[StatsService] ranking cache invalidation failed: %v", err)
		}
	}

	return attempt, nil
}

// GetUserAttempts returns the raw attempts of a user with pagination.
func (s *StatsService) GetUserAttempts(userID uint, page, pageSize int) ([]entity.Attempt, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize
	return s.attemptRepo.ListByUser(userID, pageSize, offset)
}
