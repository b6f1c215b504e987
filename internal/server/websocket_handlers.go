package server

import (
	"context"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedWebsocketHandler handles WebSocket connections for live feed delivery.
// Clients connect with ?userId= and receive their own feed events as they
// are recorded.
func (s *Server) FeedWebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		userIDRaw, err := strconv.ParseUint(conn.Query("userId"), 10, 32)
		if err != nil || userIDRaw == 0 {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid userId"}`))
			_ = conn.Close()
			return
		}
		userID := uint(userIDRaw)

		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unknown user"}`))
			_ = conn.Close()
			return
		}

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"live feed unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket Feed: failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		log.Printf("WebSocket: user %d connected to feed (conn %s)", userID, client.ID)

		go client.WritePump()
		client.ReadPump()
	})
}
