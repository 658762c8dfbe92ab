package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// TopicFunc picks the topic for a request; false rejects the request with 403.
type TopicFunc func(c *gin.Context) (string, bool)

// SnapshotFunc loads the current state sent before any live event.
type SnapshotFunc func(c *gin.Context) (interface{}, error)

// Handler upgrades to a websocket, writes the snapshot (if any) and then
// streams every event published on the chosen topic until the client leaves.
// Events published while the snapshot loads follow it, so a client may see a
// change reflected twice but never miss one.
func Handler(hub *Hub, topicFor TopicFunc, snapshot SnapshotFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic, ok := topicFor(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to subscribe"})
			return
		}

		events, unsubscribe := hub.Subscribe(topic)
		defer unsubscribe()

		var initial []byte
		if snapshot != nil {
			v, err := snapshot(c)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load current state"})
				return
			}
			if initial, err = json.Marshal(v); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load current state"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "topic", topic, "err", err)
			return
		}
		defer conn.Close()

		if initial != nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
				return
			}
		}

		// reader: only needed to notice the client going away and to receive pongs
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-gone:
				return
			case data, ok := <-events:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
}
