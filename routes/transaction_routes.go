package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/controllers"
)

// RegisterTransactionRoutes registers the ledger routes. The golden seat commission query
// lives under /trans for existing clients.
func RegisterTransactionRoutes(api *echo.Group, transactionController *controllers.TransactionController, goldenSeatController *controllers.GoldenSeatController) {
	trans := api.Group("/trans")
	trans.GET("/transaction", transactionController.GetTransactions)
	trans.GET("/commisions", goldenSeatController.GetCommissions)
}
