package websocket

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// NewUpgrader accepts connections from the given origins. Requests without an Origin
// header (non-browser clients) are accepted.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			return u.Host == r.Host
		},
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered for memberID
// until the client goes away.
func HandleWebSocket(c echo.Context, hub *Hub, upgrader *websocket.Upgrader, memberID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{MemberID: memberID, Conn: conn}
	if !hub.Register(client) {
		conn.Close()
		return nil
	}

	if err := client.WriteJSON(Notification{
		Type:     NotificationTypeConnected,
		Message:  "WebSocket connection established",
		MemberID: memberID,
	}); err != nil {
		hub.Unregister(client)
		return nil
	}

	done := make(chan struct{})
	go keepAlive(client, done)

	// Handle disconnection
	go func() {
		defer func() {
			close(done)
			hub.Unregister(client)
		}()

		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			// clients only listen; anything they send is discarded
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}

func keepAlive(client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			client.writeMu.Lock()
			err := client.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
			client.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
