package http

import (
	"net/http"

	"passball/internal/http/handlers"
	"passball/internal/http/middleware"
	"passball/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Hub           *ws.Hub
	Matches       handlers.MatchLister
	Limiter       middleware.Limiter
	Gatherer      prometheus.Gatherer
	AllowedOrigin string
	SendBuffer    int
	StaticDir     string
	Version       string
}

// RegisterRoutes - websocket, API, метрики и статика
func RegisterRoutes(r *gin.Engine, d Deps) {
	h := &handlers.Handler{
		Rooms:   d.Hub,
		Matches: d.Matches,
		Version: d.Version,
	}
	wsHandler := ws.NewWSHandler(d.Hub, d.AllowedOrigin, d.SendBuffer)

	r.GET("/healthz", h.Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	limited := r.Group("/", middleware.RateLimit(d.Limiter))
	limited.GET("/ws", wsHandler.HandleWS())

	api := limited.Group("/api")
	api.GET("/rooms", h.PublicRooms)
	api.GET("/matches", h.RecentMatches)
	api.GET("/leaderboard", h.Leaderboard)

	if d.StaticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(d.StaticDir))))
	}
}
