package users

import (
	"context"

	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository persists users. Lookups that match nothing return
// common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByToken(ctx context.Context, id primitive.ObjectID, token string, access string) (*models.User, error)
	AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error
	RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error
	EnsureIndexes(ctx context.Context) error
}
