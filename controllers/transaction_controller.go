package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/sower_backend/services"
)

type TransactionController struct {
	transactions *services.TransactionService
}

func NewTransactionController(transactions *services.TransactionService) *TransactionController {
	return &TransactionController{transactions: transactions}
}

// GetTransactions lists the caller's transactions.
func (tc *TransactionController) GetTransactions(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err)
	}

	txns, err := tc.transactions.ListTransactions(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Transactions retrieved successfully", txns)
}
