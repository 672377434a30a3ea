package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/controllers"
)

// RegisterAuthRoutes sets up the session routes
func RegisterAuthRoutes(api *echo.Group, authController *controllers.AuthController) {
	api.POST("/auth/logout", authController.Logout)
}
