package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HSouheill/sower_backend/models"
)

type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection(TransactionsCollection),
	}
}

func (r *TransactionRepository) FindByMemberIDs(ctx context.Context, memberIDs []string) ([]models.Transaction, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"memberId": bson.M{"$in": memberIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, txn)
	if err != nil {
		return duplicate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		txn.ID = id
	}
	return nil
}
