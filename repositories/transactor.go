package repositories

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HSouheill/sower_backend/models"
)

// MongoTransactor runs a unit of work inside a multi-document transaction.
// The deployment must be a replica set or a sharded cluster.
type MongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{client: client}
}

// WithTransaction commits the writes fn makes through ctx, or aborts them all when fn fails.
// fn may be retried on transient errors.
func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// MemoryTransactor restores the registered memory stores to their state before fn when fn
// fails. Units of work are serialized.
type MemoryTransactor struct {
	mu     sync.Mutex
	stores []interface{ snapshot() func() }
}

// NewMemoryTransactor covers the given stores; nil stores are skipped.
func NewMemoryTransactor(members *MemoryMemberRepository, txns *MemoryTransactionRepository, seats *MemoryGoldenSeatRepository) *MemoryTransactor {
	t := &MemoryTransactor{}
	if members != nil {
		t.stores = append(t.stores, members)
	}
	if txns != nil {
		t.stores = append(t.stores, txns)
	}
	if seats != nil {
		t.stores = append(t.stores, seats)
	}
	return t
}

func (t *MemoryTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.snapshot())
	}
	if err := fn(ctx); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

func (r *MemoryMemberRepository) snapshot() func() {
	r.mu.RLock()
	saved := append([]models.Member(nil), r.members...)
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.members = saved
		r.mu.Unlock()
	}
}

func (r *MemoryTransactionRepository) snapshot() func() {
	r.mu.RLock()
	saved := append([]models.Transaction(nil), r.txns...)
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.txns = saved
		r.mu.Unlock()
	}
}

func (r *MemoryGoldenSeatRepository) snapshot() func() {
	r.mu.RLock()
	saved := append([]models.GoldenSeat(nil), r.seats...)
	r.mu.RUnlock()
	return func() {
		r.mu.Lock()
		r.seats = saved
		r.mu.Unlock()
	}
}
