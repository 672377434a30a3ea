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

type MemberRepository struct {
	collection *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{
		collection: db.Collection(MembersCollection),
	}
}

func (r *MemberRepository) findOne(ctx context.Context, filter bson.M) (*models.Member, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var member models.Member
	if err := r.collection.FindOne(ctx, filter).Decode(&member); err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

func (r *MemberRepository) find(ctx context.Context, filter bson.M) ([]models.Member, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// _id order keeps sibling order stable between builds
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepository) FindByMemberID(ctx context.Context, memberID string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"memberID": memberID})
}

func (r *MemberRepository) FindByReferralCode(ctx context.Context, code string) (*models.Member, error) {
	return r.findOne(ctx, bson.M{"referralCode": code})
}

func (r *MemberRepository) FindByReferredBy(ctx context.Context, codes ...string) ([]models.Member, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"referredBy": bson.M{"$in": codes}})
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	return r.find(ctx, bson.M{})
}

func (r *MemberRepository) FindByMemberType(ctx context.Context, memberType models.MemberType) ([]models.Member, error) {
	return r.find(ctx, bson.M{"memberType": memberType})
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}
	member.UpdatedAt = member.CreatedAt

	res, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		return duplicate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		member.ID = id
	}
	return nil
}

func (r *MemberRepository) UpdateMemberType(ctx context.Context, memberID string, memberType models.MemberType) (*models.Member, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"memberID": memberID}
	update := bson.M{
		"$set": bson.M{
			"memberType": memberType,
			"updatedAt":  time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member models.Member
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&member); err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

func (r *MemberRepository) Delete(ctx context.Context, memberID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"memberID": memberID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
