package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HSouheill/sower_backend/models"
)

type GoldenSeatRepository struct {
	collection *mongo.Collection
}

func NewGoldenSeatRepository(db *mongo.Database) *GoldenSeatRepository {
	return &GoldenSeatRepository{
		collection: db.Collection(GoldenSeatsCollection),
	}
}

func (r *GoldenSeatRepository) Create(ctx context.Context, seat *models.GoldenSeat) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if seat.CreatedAt.IsZero() {
		seat.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, seat)
	return duplicate(err)
}

func (r *GoldenSeatRepository) FindAll(ctx context.Context) ([]models.GoldenSeat, error) {
	return r.find(ctx, bson.M{})
}

// FindBySlot matches on the bson key named by slot.
func (r *GoldenSeatRepository) FindBySlot(ctx context.Context, slot models.SeatSlot, value string) ([]models.GoldenSeat, error) {
	if !validSlot(slot) {
		return nil, fmt.Errorf("unknown seat slot %q", slot)
	}
	return r.find(ctx, bson.M{string(slot): value})
}

func (r *GoldenSeatRepository) find(ctx context.Context, filter bson.M) ([]models.GoldenSeat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var seats []models.GoldenSeat
	if err := cursor.All(ctx, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatSlots lists every slot in hierarchy order.
var SeatSlots = []models.SeatSlot{
	models.SlotCaptain,
	models.SlotMayor,
	models.SlotGovernor,
	models.SlotSenator,
	models.SlotVicePresident,
	models.SlotPresident,
}

func validSlot(slot models.SeatSlot) bool {
	for _, s := range SeatSlots {
		if s == slot {
			return true
		}
	}
	return false
}
