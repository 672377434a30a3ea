package repositories

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the referral queries rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		MembersCollection: {
			{Keys: bson.D{{Key: "referralCode", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "memberID", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "referredBy", Value: 1}}},
			{Keys: bson.D{{Key: "memberType", Value: 1}}},
		},
		TransactionsCollection: {
			{Keys: bson.D{{Key: "memberId", Value: 1}}},
		},
	}
	for _, slot := range SeatSlots {
		specs[GoldenSeatsCollection] = append(specs[GoldenSeatsCollection],
			mongo.IndexModel{Keys: bson.D{{Key: string(slot), Value: 1}}})
	}

	for collection, models := range specs {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
		log.Ctx(ctx).Info().Str("collection", collection).Strs("indexes", names).Msg("Indexes ensured")
	}
	return nil
}
