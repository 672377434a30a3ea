// services/stores.go
package services

import (
	"context"

	"github.com/HSouheill/sower_backend/models"
)

// MemberStore is the member directory. Lookups of a single record return
// repositories.ErrNotFound when nothing matches.
type MemberStore interface {
	FindByMemberID(ctx context.Context, memberID string) (*models.Member, error)
	FindByReferralCode(ctx context.Context, code string) (*models.Member, error)
	// FindByReferredBy returns the members whose referredBy is one of codes, in store order.
	FindByReferredBy(ctx context.Context, codes ...string) ([]models.Member, error)
	FindAll(ctx context.Context) ([]models.Member, error)
	FindByMemberType(ctx context.Context, memberType models.MemberType) ([]models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	UpdateMemberType(ctx context.Context, memberID string, memberType models.MemberType) (*models.Member, error)
	Delete(ctx context.Context, memberID string) error
}

// TransactionStore is the transaction ledger.
type TransactionStore interface {
	FindByMemberIDs(ctx context.Context, memberIDs []string) ([]models.Transaction, error)
	Create(ctx context.Context, txn *models.Transaction) error
}

// UserStore resolves member ids to user profiles.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// GoldenSeatStore persists golden seat records.
type GoldenSeatStore interface {
	Create(ctx context.Context, seat *models.GoldenSeat) error
	FindAll(ctx context.Context) ([]models.GoldenSeat, error)
	FindBySlot(ctx context.Context, slot models.SeatSlot, value string) ([]models.GoldenSeat, error)
}

// EventPublisher emits domain events. Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// Transactor applies the writes fn makes through ctx together, or none of them.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
