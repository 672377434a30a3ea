package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/security"
)

// RequireJSON rejects request bodies that are not JSON with 415.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.ContentLength == 0 {
				return next(c)
			}
			if !security.ValidateContentType(req.Header.Get(echo.HeaderContentType)) {
				return c.JSON(http.StatusUnsupportedMediaType, models.Response{
					Status:  http.StatusUnsupportedMediaType,
					Message: "Content-Type must be application/json",
				})
			}
			return next(c)
		}
	}
}
