package delivery

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sraws-app/sraws/backend/internal/models"
)

// EventNewNotification is the event name the web client listens for.
const EventNewNotification = "newNotification"

// Event is the frame envelope sent over the push channel. Data carries the
// same shape as a listed notification record.
type Event struct {
	Event string                      `json:"event"`
	Data  models.EnrichedNotification `json:"data"`
}

// WebSocketHandler upgrades client connections and pumps hub events to them
type WebSocketHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler bound to a hub
func NewWebSocketHandler(hub *Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			// CORS is enforced at the HTTP layer; the socket accepts any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterWebSocketRoutes registers the push channel endpoint
func (h *WebSocketHandler) RegisterWebSocketRoutes(e *echo.Echo) {
	e.GET("/ws/notifications/:user_id", h.Serve)
}

// Serve upgrades the connection, registers it with the hub and forwards
// pushed notifications until the client disconnects
func (h *WebSocketHandler) Serve(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := h.hub.Subscribe(uint(userID))
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	// Drain inbound frames so close/ping handling works and disconnects
	// are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case notification, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(Event{Event: EventNewNotification, Data: notification}); err != nil {
				log.Printf("push delivery to user %d failed: %v", userID, err)
				return nil
			}
		case <-done:
			return nil
		}
	}
}
