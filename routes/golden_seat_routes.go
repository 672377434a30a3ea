package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/controllers"
)

func RegisterGoldenSeatRoutes(api *echo.Group, goldenSeatController *controllers.GoldenSeatController) {
	api.GET("/golden/golden-seats", goldenSeatController.ListGoldenSeats)
}
