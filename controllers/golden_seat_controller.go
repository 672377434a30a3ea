package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/services"
)

type GoldenSeatController struct {
	seats *services.GoldenSeatService
}

func NewGoldenSeatController(seats *services.GoldenSeatService) *GoldenSeatController {
	return &GoldenSeatController{seats: seats}
}

func (gc *GoldenSeatController) ListGoldenSeats(c echo.Context) error {
	seats, err := gc.seats.ListGoldenSeats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Golden seats retrieved successfully", seats)
}

// GetCommissions sums the golden seat commissions under the caller's position.
func (gc *GoldenSeatController) GetCommissions(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	commission, err := gc.seats.CommissionForMember(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Commissions retrieved successfully", commission)
}
