package controllers

import (
	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/middleware"
	"github.com/HSouheill/sower_backend/websocket"
)

// NotificationController streams referral notifications to connected members.
type NotificationController struct {
	hub      *websocket.Hub
	upgrader *gorilla.Upgrader
}

func NewNotificationController(hub *websocket.Hub, allowedOrigins []string) *NotificationController {
	return &NotificationController{hub: hub, upgrader: websocket.NewUpgrader(allowedOrigins)}
}

// Connect upgrades the caller's request to a notification stream.
func (nc *NotificationController) Connect(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := websocket.HandleWebSocket(c, nc.hub, nc.upgrader, userID); err != nil {
		// the upgrader has already answered the client
		middleware.RequestLogger(c).Debug().Err(err).Msg("WebSocket upgrade failed")
	}
	return nil
}
