package ws

import (
	"net/http"

	"passball/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// содержит зависимости для обработки WebSocket
type WSHandler struct {
	Hub           *Hub
	AllowedOrigin string
	SendBuffer    int
}

func NewWSHandler(hub *Hub, allowedOrigin string, sendBuffer int) *WSHandler {
	return &WSHandler{
		Hub:           hub,
		AllowedOrigin: allowedOrigin,
		SendBuffer:    sendBuffer,
	}
}

func (h *WSHandler) HandleWS() gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if h.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == h.AllowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err, "ip", c.ClientIP())
			return
		}

		client := NewClient(conn, h.Hub, h.SendBuffer)
		go client.Run()
	}
}
