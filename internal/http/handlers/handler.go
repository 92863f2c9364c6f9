package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"passball/internal/domain"
	"passball/internal/room"

	"github.com/gin-gonic/gin"
)

const (
	defaultMatchesLimit = 20
	maxMatchesLimit     = 100
)

// RoomLister - публичный список комнат (ws.Hub)
type RoomLister interface {
	PublicRooms(ctx context.Context) ([]room.Listing, error)
}

// MatchLister - история матчей (repository.MatchRepository)
type MatchLister interface {
	GetRecent(ctx context.Context, limit int) ([]*domain.MatchRecord, error)
	GetTopWinners(ctx context.Context, limit int) ([]domain.WinnerStat, error)
}

type Handler struct {
	Rooms   RoomLister
	Matches MatchLister // nil, если база не настроена
	Version string
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.Version})
}

// открытые публичные комнаты, как в событии room_list
func (h *Handler) PublicRooms(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rooms, err := h.Rooms.PublicRooms(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rooms unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// последние завершенные матчи
func (h *Handler) RecentMatches(c *gin.Context) {
	if h.Matches == nil {
		c.JSON(http.StatusOK, gin.H{"matches": []*domain.MatchRecord{}})
		return
	}

	limit := defaultMatchesLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxMatchesLimit)
	}

	matches, err := h.Matches.GetRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
