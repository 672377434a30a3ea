package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/middleware"
	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/services"
)

// errorStatus maps service errors to HTTP status codes and client messages.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrUnauthenticated, http.StatusUnauthorized, "Authentication failed"},
	{services.ErrMemberNotFound, http.StatusNotFound, "Member not found"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrInvalidReferral, http.StatusBadRequest, "Invalid referral code"},
	{services.ErrInvalidMemberType, http.StatusBadRequest, "Invalid member type"},
	{services.ErrMemberExists, http.StatusConflict, "Member already exists"},
	{services.ErrDuplicateReferralCode, http.StatusConflict, "Referral code already in use"},
	{services.ErrHasDescendants, http.StatusConflict, "Member still has referrals"},
	{services.ErrUnrecognizedPosition, http.StatusUnprocessableEntity, "Member does not hold a golden seat position"},
}

// respondError writes err in the response envelope. Unmapped errors are logged and
// answered with a generic 500.
func respondError(c echo.Context, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.JSON(e.status, models.Response{
				Status:  e.status,
				Message: e.message,
			})
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Status:  http.StatusServiceUnavailable,
			Message: "Request cancelled",
		})
	}

	middleware.RequestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

func respondOK(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.Response{
		Status:  http.StatusBadRequest,
		Message: message,
	})
}

// callerID returns the member id of the authenticated caller.
func callerID(c echo.Context) (string, error) {
	id, err := middleware.ExtractUserID(c)
	if err != nil || id == "" {
		return "", services.ErrUnauthenticated
	}
	return id, nil
}
