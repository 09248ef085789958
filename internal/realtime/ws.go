package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mohamedammar2729/Parking-System/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already allows any origin via CORS; the socket follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the connection and bridges it to the hub.
// Inbound frames: subscribe/unsubscribe with a gateId payload.
// Outbound frames: zone-update and admin-update envelopes.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}

		client := hub.Register(uuid.NewString())
		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func readPump(conn *websocket.Conn, hub *Hub, client *Client) {
	defer func() {
		hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame struct {
			Type    string           `json:"type"`
			Payload SubscribePayload `json:"payload"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}

		switch frame.Type {
		case MessageSubscribe:
			if frame.Payload.GateID != "" {
				hub.Subscribe(client, frame.Payload.GateID)
			}
		case MessageUnsubscribe:
			if frame.Payload.GateID != "" {
				hub.Unsubscribe(client, frame.Payload.GateID)
			}
		default:
			// Unknown frame types are ignored, not fatal.
		}
	}
}

func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
