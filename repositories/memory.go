package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/sower_backend/models"
)

// In-memory stores used by tests and by the serve command when no MONGO_URI is set.
// Records are returned in insertion order.

func ctxDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

type MemoryMemberRepository struct {
	mu      sync.RWMutex
	members []models.Member
}

func NewMemoryMemberRepository(members ...models.Member) *MemoryMemberRepository {
	r := &MemoryMemberRepository{}
	for _, m := range members {
		m := m
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.members = append(r.members, m)
	}
	return r
}

func (r *MemoryMemberRepository) findOne(ctx context.Context, match func(*models.Member) bool) (*models.Member, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.members {
		if match(&r.members[i]) {
			m := r.members[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryMemberRepository) filter(ctx context.Context, match func(*models.Member) bool) ([]models.Member, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Member
	for i := range r.members {
		if match(&r.members[i]) {
			out = append(out, r.members[i])
		}
	}
	return out, nil
}

func (r *MemoryMemberRepository) FindByMemberID(ctx context.Context, memberID string) (*models.Member, error) {
	return r.findOne(ctx, func(m *models.Member) bool { return m.MemberID == memberID })
}

func (r *MemoryMemberRepository) FindByReferralCode(ctx context.Context, code string) (*models.Member, error) {
	return r.findOne(ctx, func(m *models.Member) bool { return m.ReferralCode == code })
}

func (r *MemoryMemberRepository) FindByReferredBy(ctx context.Context, codes ...string) ([]models.Member, error) {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return r.filter(ctx, func(m *models.Member) bool {
		if m.ReferredBy == "" {
			return false
		}
		_, ok := set[m.ReferredBy]
		return ok
	})
}

func (r *MemoryMemberRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	return r.filter(ctx, func(*models.Member) bool { return true })
}

func (r *MemoryMemberRepository) FindByMemberType(ctx context.Context, memberType models.MemberType) ([]models.Member, error) {
	return r.filter(ctx, func(m *models.Member) bool { return m.MemberType == memberType })
}

func (r *MemoryMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if err := ctxDone(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.MemberID == member.MemberID || (member.ReferralCode != "" && m.ReferralCode == member.ReferralCode) {
			return ErrDuplicate
		}
	}
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	member.UpdatedAt = member.CreatedAt
	r.members = append(r.members, *member)
	return nil
}

func (r *MemoryMemberRepository) UpdateMemberType(ctx context.Context, memberID string, memberType models.MemberType) (*models.Member, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.members {
		if r.members[i].MemberID == memberID {
			r.members[i].MemberType = memberType
			r.members[i].UpdatedAt = time.Now()
			m := r.members[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryMemberRepository) Delete(ctx context.Context, memberID string) error {
	if err := ctxDone(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.members {
		if r.members[i].MemberID == memberID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type MemoryTransactionRepository struct {
	mu   sync.RWMutex
	txns []models.Transaction
}

func NewMemoryTransactionRepository(txns ...models.Transaction) *MemoryTransactionRepository {
	return &MemoryTransactionRepository{txns: append([]models.Transaction(nil), txns...)}
}

func (r *MemoryTransactionRepository) FindByMemberIDs(ctx context.Context, memberIDs []string) ([]models.Transaction, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		set[id] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Transaction
	for _, t := range r.txns {
		if _, ok := set[t.MemberID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if err := ctxDone(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID.IsZero() {
		txn.ID = primitive.NewObjectID()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	r.txns = append(r.txns, *txn)
	return nil
}

// All returns a copy of every stored transaction.
func (r *MemoryTransactionRepository) All() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Transaction(nil), r.txns...)
}

// MemoryUserRepository keys users by the hex form of their _id.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository(users ...models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		r.users[u.ID.Hex()] = u
	}
	return r
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type MemoryGoldenSeatRepository struct {
	mu    sync.RWMutex
	seats []models.GoldenSeat
}

func NewMemoryGoldenSeatRepository(seats ...models.GoldenSeat) *MemoryGoldenSeatRepository {
	return &MemoryGoldenSeatRepository{seats: append([]models.GoldenSeat(nil), seats...)}
}

func (r *MemoryGoldenSeatRepository) Create(ctx context.Context, seat *models.GoldenSeat) error {
	if err := ctxDone(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if seat.ID.IsZero() {
		seat.ID = primitive.NewObjectID()
	}
	r.seats = append(r.seats, *seat)
	return nil
}

func (r *MemoryGoldenSeatRepository) FindAll(ctx context.Context) ([]models.GoldenSeat, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.GoldenSeat(nil), r.seats...), nil
}

func (r *MemoryGoldenSeatRepository) FindBySlot(ctx context.Context, slot models.SeatSlot, value string) ([]models.GoldenSeat, error) {
	if err := ctxDone(ctx); err != nil {
		return nil, err
	}
	if !validSlot(slot) {
		return nil, fmt.Errorf("unknown seat slot %q", slot)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.GoldenSeat
	for i := range r.seats {
		if r.seats[i].Value(slot) == value {
			out = append(out, r.seats[i])
		}
	}
	return out, nil
}
