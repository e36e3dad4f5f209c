package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
)

// StatsHandler serves per-user statistics, the leaderboard and attempt
// submission.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// SubmitAttemptRequest is the attempt submission payload. Field names keep
// the original client contract.
type SubmitAttemptRequest struct {
	QuizID uint `json:"quizId" binding:"required"`
	Time   int  `json:"time"`
	Score  int  `json:"score"`
}

// GetUserStats returns aggregate statistics for the user named by the
// userId query parameter. Callers may only read their own stats unless
// they are admins.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	rawID := c.Query("userId")
	if rawID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}

	userID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a positive integer"})
		return
	}

	if err := middleware.RequireSelfOrAdmin(c, uint(userID)); err != nil {
		handleServiceError(c, err)
		return
	}

	stats, err := h.statsService.ComputeUserStats(uint(userID))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// GetRanking returns the leaderboard, ordered by games played descending.
func (h *StatsHandler) GetRanking(c *gin.Context) {
	ranking, err := h.statsService.ComputeRanking()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(ranking))
}

// SubmitAttempt records a finished game for the authenticated caller.
func (h *StatsHandler) SubmitAttempt(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := h.statsService.SubmitAttempt(callerID, req.QuizID, req.Time, req.Score)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// GetUserAttempts returns the authenticated caller's attempt history.
func (h *StatsHandler) GetUserAttempts(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	attempts, err := h.statsService.GetUserAttempts(callerID, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempts": attempts,
		"page":     page,
	})
}

// ExportRanking streams the leaderboard as an xlsx workbook.
func (h *StatsHandler) ExportRanking(c *gin.Context) {
	ranking, err := h.statsService.ComputeRanking()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ranking"
	index, err := f.NewSheet(sheet)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Position")
	f.SetCellValue(sheet, "B1", "User ID")
	f.SetCellValue(sheet, "C1", "Name")
	f.SetCellValue(sheet, "D1", "Games played")

	for i, entry := range ranking {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Name)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.TotalGames)
	}

	filename := fmt.Sprintf("ranking-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		handleServiceError(c, err)
		return
	}
}
