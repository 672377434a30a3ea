package services

import (
	"context"
	"errors"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
)

// TransactionService lists a member's ledger entries.
type TransactionService struct {
	transactions TransactionStore
	users        UserStore
}

func NewTransactionService(transactions TransactionStore, users UserStore) *TransactionService {
	return &TransactionService{transactions: transactions, users: users}
}

// ListTransactions returns the caller's transactions annotated with the caller's name.
func (s *TransactionService) ListTransactions(ctx context.Context, callerMemberID string) ([]models.TransactionWithUser, error) {
	if callerMemberID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, callerMemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	txns, err := s.transactions.FindByMemberIDs(ctx, []string{callerMemberID})
	if err != nil {
		return nil, err
	}

	out := make([]models.TransactionWithUser, 0, len(txns))
	for _, t := range txns {
		tw := models.TransactionWithUser{Transaction: t}
		tw.User.FirstName = user.FirstName
		tw.User.LastName = user.LastName
		out = append(out, tw)
	}
	return out, nil
}
