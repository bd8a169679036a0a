// Package users contains the user repository contract and its MongoDB
// implementation.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "users"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique index on email that backs the
// one-account-per-email rule.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetUserByToken(ctx context.Context, id primitive.ObjectID, token string, access string) (*models.User, error) {
	return r.findOne(ctx, bson.M{
		"_id":    id,
		"tokens": bson.M{"$elemMatch": bson.M{"token": token, "access": access}},
	})
}

func (r *MongoRepository) AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error {
	return r.updateByID(ctx, id, bson.M{"$push": bson.M{"tokens": token}})
}

// RemoveToken pulls every entry with the given token value. Pulling a token
// that is not there still succeeds as long as the user exists.
func (r *MongoRepository) RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.updateByID(ctx, id, bson.M{"$pull": bson.M{"tokens": bson.M{"token": token}}})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	user := &models.User{}
	err := r.coll.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *MongoRepository) updateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
