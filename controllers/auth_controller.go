package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/middleware"
	"github.com/HSouheill/sower_backend/services"
)

// AuthController revokes caller tokens. Token issuance belongs to the identity service.
type AuthController struct {
	blacklist middleware.TokenBlacklist
}

func NewAuthController(blacklist middleware.TokenBlacklist) *AuthController {
	return &AuthController{blacklist: blacklist}
}

// Logout revokes the caller's token and clears the token cookie.
func (ac *AuthController) Logout(c echo.Context) error {
	token := middleware.RawToken(c)
	if token == "" {
		return respondError(c, services.ErrUnauthenticated)
	}

	var expiry time.Time
	if claims := middleware.GetUserFromToken(c); claims != nil && claims.ExpiresAt > 0 {
		expiry = time.Unix(claims.ExpiresAt, 0)
	}
	if err := ac.blacklist.Revoke(c.Request().Context(), token, expiry); err != nil {
		return respondError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	return respondOK(c, http.StatusOK, "Logged out successfully", nil)
}
