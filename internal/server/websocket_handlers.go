// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade rejects plain HTTP requests to the /ws endpoint.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// WebSocketEvents handles WebSocket connections for the engine event stream.
// The stream is one-way: clients receive JSON events and never send commands.
func (s *Server) WebSocketEvents(conn *websocket.Conn) {
	client, err := s.hub.Register(conn)
	if err != nil {
		log.Printf("WebSocket: failed to register client: %v", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
		_ = conn.Close()
		return
	}

	// Greet with the current engine counts so a freshly connected dashboard
	// can render without a separate REST round trip.
	snapshot, err := json.Marshal(map[string]interface{}{
		"type": "snapshot",
		"payload": map[string]interface{}{
			"accounts":  len(s.store.Accounts()),
			"scheduled": len(s.store.ScheduledPosts()),
			"posted":    len(s.store.PostedPosts()),
		},
	})
	if err == nil {
		client.TrySend(snapshot)
	}

	go client.WritePump()
	client.ReadPump()
}
