package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/HSouheill/sower_backend/models"
)

// Define notification types
const (
	NotificationTypeConnected     = "connected"
	NotificationTypeReferralBonus = "referral_bonus"
	NotificationTypeEnrolled      = "enrolled"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type     string      `json:"type"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data,omitempty"`
	MemberID string      `json:"memberId,omitempty"`
}

// Client represents a connected WebSocket client
type Client struct {
	MemberID string
	Conn     *websocket.Conn

	writeMu sync.Mutex
}

// WriteJSON serializes writes; a gorilla connection supports one concurrent writer.
func (c *Client) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub tracks the connected members and pushes referral notifications to them.
// A member may hold several connections.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop. It closes every connection when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for memberID, conns := range h.clients {
				for client := range conns {
					client.Conn.Close()
				}
				delete(h.clients, memberID)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MemberID] == nil {
				h.clients[client.MemberID] = make(map[*Client]struct{})
			}
			h.clients[client.MemberID][client] = struct{}{}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.MemberID]; ok {
				delete(conns, client)
				if len(conns) == 0 {
					delete(h.clients, client.MemberID)
				}
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// Register adds client to the hub. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client and closes its connection.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		client.Conn.Close()
	}
}

// Connected reports whether memberID has at least one open connection.
func (h *Hub) Connected(memberID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[memberID]) > 0
}

// SendToMember sends a notification to every connection of memberID. A member without a
// connection is not an error.
func (h *Hub) SendToMember(memberID string, notification Notification) {
	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[memberID]))
	for client := range h.clients[memberID] {
		conns = append(conns, client)
	}
	h.mu.RUnlock()

	for _, client := range conns {
		if err := client.WriteJSON(notification); err != nil {
			log.Debug().Err(err).Str("memberId", memberID).Msg("WebSocket write failed")
		}
	}
}

// Publish turns member events into notifications: the new member is told its membership
// is active and the referrer is told about its bonus. It never fails, so it can sit next
// to the Kafka producer.
func (h *Hub) Publish(_ context.Context, _ string, value interface{}) error {
	switch ev := value.(type) {
	case models.MemberEnrolledEvent:
		h.SendToMember(ev.MemberID, Notification{
			Type:     NotificationTypeEnrolled,
			Message:  "Your membership is active",
			Data:     ev,
			MemberID: ev.MemberID,
		})
	case models.ReferralBonusEvent:
		h.SendToMember(ev.ReferrerID, Notification{
			Type:     NotificationTypeReferralBonus,
			Message:  "You earned a referral bonus",
			Data:     ev,
			MemberID: ev.ReferrerID,
		})
	}
	return nil
}

func (h *Hub) Close() error { return nil }
