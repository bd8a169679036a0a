package todos

import (
	"context"

	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository persists todos. Every read and write except Create is filtered
// by owner; a todo that exists but belongs to someone else is reported as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error)
	GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error)
	UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, update models.TodoUpdate) (*models.Todo, error)
	DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error)
	EnsureIndexes(ctx context.Context) error
}
