package handlers

import (
	"net/http"

	"passball/internal/domain"

	"github.com/gin-gonic/gin"
)

const leaderboardSize = 100

// список лучших игроков по числу побед
func (h *Handler) Leaderboard(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"leaderboard": []domain.WinnerStat{}})
		return
	}

	top, err := h.Matches.GetTopWinners(c.Request.Context(), leaderboardSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}
