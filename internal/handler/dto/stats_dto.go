package dto

import (
	"github.com/yourusername/quiz-api/internal/service"
)

// StatsResponse is the per-user statistics payload. Field names keep the
// original client contract.
type StatsResponse struct {
	TotalJogos   int     `json:"totalJogos"`
	MediaAcertos float64 `json:"mediaAcertos"`
	MediaErros   float64 `json:"mediaErros"`
}

// RankingEntryResponse is one leaderboard row.
type RankingEntryResponse struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	TotalJogos int64  `json:"totalJogos"`
}

// NewStatsResponse converts the aggregate into the client payload.
func NewStatsResponse(stats *service.UserStats) *StatsResponse {
	return &StatsResponse{
		TotalJogos:   stats.TotalGames,
		MediaAcertos: stats.MeanCorrect,
		MediaErros:   stats.MeanIncorrect,
	}
}

// NewRankingResponse converts the ranking into the client payload, keeping
// the descending order produced by the aggregator.
func NewRankingResponse(ranking []service.RankingEntry) []RankingEntryResponse {
	out := make([]RankingEntryResponse, len(ranking))
	for i, entry := range ranking {
		out[i] = RankingEntryResponse{
			UserID:     entry.UserID,
			Name:       entry.Name,
			TotalJogos: entry.TotalGames,
		}
	}
	return out
}
