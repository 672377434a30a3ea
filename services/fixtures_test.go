package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/sower_backend/models"
	"github.com/HSouheill/sower_backend/repositories"
)

func newUser(first, last string) models.User {
	return models.User{
		ID:         primitive.NewObjectID(),
		FirstName:  first,
		LastName:   last,
		Email:      first + "@example.com",
		DateJoined: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newMemberFor(id, code, referredBy string, tier models.MemberType) models.Member {
	return models.Member{
		ID:           primitive.NewObjectID(),
		MemberID:     id,
		ReferralCode: code,
		ReferredBy:   referredBy,
		MemberType:   tier,
		MemberStatus: models.MemberStatusActive,
		Region:       "Region IV-A",
		Province:     "Laguna",
		City:         "Calamba",
		Barangay:     "Barangay A",
		MemberDate:   "15/01/2024",
		Role:         models.DefaultRole,
	}
}

func txn(memberID string, total float64, at time.Time) models.Transaction {
	return models.Transaction{
		ID:            primitive.NewObjectID(),
		MemberID:      memberID,
		TransactionID: "TXN-" + memberID,
		ProductName:   "Product",
		Quantity:      1,
		Price:         total,
		Total:         total,
		CreatedAt:     at,
	}
}

// countingMembers records the codes of every FindByReferredBy call.
type countingMembers struct {
	*repositories.MemoryMemberRepository

	mu    sync.Mutex
	calls [][]string
	after func(call int)
}

func (c *countingMembers) FindByReferredBy(ctx context.Context, codes ...string) ([]models.Member, error) {
	c.mu.Lock()
	c.calls = append(c.calls, append([]string(nil), codes...))
	n := len(c.calls)
	c.mu.Unlock()

	out, err := c.MemoryMemberRepository.FindByReferredBy(ctx, codes...)
	if c.after != nil {
		c.after(n)
	}
	return out, err
}

// racingMembers stores rival just before the first Create, as a concurrent enrollment would.
type racingMembers struct {
	*repositories.MemoryMemberRepository
	rival models.Member
	raced bool
}

func (r *racingMembers) Create(ctx context.Context, member *models.Member) error {
	if !r.raced {
		r.raced = true
		rival := r.rival
		if err := r.MemoryMemberRepository.Create(ctx, &rival); err != nil {
			return err
		}
	}
	return r.MemoryMemberRepository.Create(ctx, member)
}

type mockSeatStore struct {
	mock.Mock
}

func (m *mockSeatStore) Create(ctx context.Context, seat *models.GoldenSeat) error {
	return m.Called(ctx, seat).Error(0)
}

func (m *mockSeatStore) FindAll(ctx context.Context) ([]models.GoldenSeat, error) {
	args := m.Called(ctx)
	seats, _ := args.Get(0).([]models.GoldenSeat)
	return seats, args.Error(1)
}

func (m *mockSeatStore) FindBySlot(ctx context.Context, slot models.SeatSlot, value string) ([]models.GoldenSeat, error) {
	args := m.Called(ctx, slot, value)
	seats, _ := args.Get(0).([]models.GoldenSeat)
	return seats, args.Error(1)
}

type mockTransactionStore struct {
	mock.Mock
}

func (m *mockTransactionStore) Create(ctx context.Context, txn *models.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *mockTransactionStore) FindByMemberIDs(ctx context.Context, memberIDs []string) ([]models.Transaction, error) {
	args := m.Called(ctx, memberIDs)
	txns, _ := args.Get(0).([]models.Transaction)
	return txns, args.Error(1)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, value)
	return p.err
}

func flatten(forest []*models.ReferralTreeNode) []*models.ReferralTreeNode {
	var out []*models.ReferralTreeNode
	var walk func([]*models.ReferralTreeNode)
	walk = func(nodes []*models.ReferralTreeNode) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

func depthOf(forest []*models.ReferralTreeNode) int {
	max := 0
	for _, n := range forest {
		if d := 1 + depthOf(n.Children); d > max {
			max = d
		}
	}
	return max
}
