package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

// clone copies the user so callers never share the token slice with the store.
func clone(u *models.User) *models.User {
	c := *u
	c.Tokens = append([]models.Token{}, u.Tokens...)
	return &c
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Tokens == nil {
		user.Tokens = []models.Token{}
	}
	r.users[user.ID] = clone(user)

	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UserRepository) GetUserByToken(ctx context.Context, id primitive.ObjectID, token string, access string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || !u.HasToken(token, access) {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (r *UserRepository) RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}

	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}
