// Package todos contains the todo repository contract and its MongoDB
// implementation.
package todos

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

const CollectionName = "todos"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes indexes the owner field used by every scoped query.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "_creator", Value: 1}},
		Options: options.Index().SetName("creator"),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, todo); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *MongoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"_creator": owner})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	todos := make([]*models.Todo, 0)
	if err := cur.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todos, nil
}

func (r *MongoRepository) GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	todo := &models.Todo{}
	err := r.coll.FindOne(ctx, scoped(id, owner)).Decode(todo)
	return decoded(todo, err)
}

func (r *MongoRepository) UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, update models.TodoUpdate) (*models.Todo, error) {
	set := bson.M{
		"completed":   update.Completed,
		"completedAt": update.CompletedAt,
	}
	if update.Text != nil {
		set["text"] = *update.Text
	}

	todo := &models.Todo{}
	err := r.coll.FindOneAndUpdate(ctx, scoped(id, owner), bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(todo)
	return decoded(todo, err)
}

func (r *MongoRepository) DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	todo := &models.Todo{}
	err := r.coll.FindOneAndDelete(ctx, scoped(id, owner)).Decode(todo)
	return decoded(todo, err)
}

func scoped(id, owner primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "_creator": owner}
}

func decoded(todo *models.Todo, err error) (*models.Todo, error) {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}
