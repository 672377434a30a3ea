package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/controllers"
)

// RegisterNotificationRoutes registers the live notification stream
func RegisterNotificationRoutes(api *echo.Group, notificationController *controllers.NotificationController) {
	api.GET("/notifications/ws", notificationController.Connect)
}
