package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/HSouheill/sower_backend/controllers"
)

// Handlers bundles the controllers the API is served by.
type Handlers struct {
	Auth         *controllers.AuthController
	Member       *controllers.MemberController
	Referral     *controllers.ReferralController
	GoldenSeat   *controllers.GoldenSeatController
	Transaction  *controllers.TransactionController
	Notification *controllers.NotificationController
}

// AdminUserType is the JWT userType allowed to manage other members.
const AdminUserType = "admin"

// SetupRoutes configures all API routes by calling individual route registration functions.
// auth is applied to every /api route.
func SetupRoutes(e *echo.Echo, h Handlers, auth ...echo.MiddlewareFunc) {
	e.Match([]string{http.MethodGet, http.MethodHead}, "/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", auth...)

	RegisterAuthRoutes(api, h.Auth)
	RegisterMemberRoutes(api, h.Member, h.Referral)
	RegisterTransactionRoutes(api, h.Transaction, h.GoldenSeat)
	RegisterGoldenSeatRoutes(api, h.GoldenSeat)
	RegisterNotificationRoutes(api, h.Notification)
}
