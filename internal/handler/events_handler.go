package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// EventsHandler streams submission lifecycle events to admin dashboards over
// WebSocket. Events originate from the services via Redis pub/sub, so every
// server instance sees every event.
type EventsHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "events_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// LiveSubmissions godoc
// WS /ws/v1/admin/submissions
// Upgrades to WebSocket and forwards submission events as they happen.
// Admin auth is enforced by the route middleware (token query fallback for
// browser WebSocket clients).
func (h *EventsHandler) LiveSubmissions(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.rdb.Subscribe(ctx, config.EventChannel.SubmissionEvents)
	defer pubsub.Close()

	h.log.Info().Str("remote", c.ClientIP()).Msg("admin connected to live stream")

	// Read pump: clients never send data, but reading is the only way to
	// notice a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	events := pubsub.Channel()
	for {
		select {
		case msg, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.log.Debug().Err(err).Msg("write failed, closing stream")
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			h.log.Info().Msg("admin disconnected from live stream")
			return
		case <-ctx.Done():
			return
		}
	}
}
