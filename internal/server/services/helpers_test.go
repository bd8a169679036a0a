package services

import (
	"context"

	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeRepoManager1 vends whichever fakes a test sets.
type fakeRepoManager1 struct {
	u users.Repository
	t todos.Repository
}

func (f *fakeRepoManager1) Users() users.Repository               { return f.u }
func (f *fakeRepoManager1) Todos() todos.Repository               { return f.t }
func (f *fakeRepoManager1) RunMigrations(ctx context.Context) error { return nil }
func (f *fakeRepoManager1) Close(ctx context.Context) error         { return nil }

type fakeUsersRepo1 struct {
	createErr error
	getOut    *models.User
	getErr    error
	addErr    error
	removeErr error
}

func (f *fakeUsersRepo1) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

func (f *fakeUsersRepo1) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo1) GetUserByToken(ctx context.Context, id primitive.ObjectID, token, access string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo1) AddToken(ctx context.Context, id primitive.ObjectID, token models.Token) error {
	return f.addErr
}

func (f *fakeUsersRepo1) RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return f.removeErr
}

func (f *fakeUsersRepo1) EnsureIndexes(ctx context.Context) error { return nil }

// fakeTodosRepo1 fails every call with err.
type fakeTodosRepo1 struct {
	err error
}

func (f *fakeTodosRepo1) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	return nil, f.err
}

func (f *fakeTodosRepo1) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error) {
	return nil, f.err
}

func (f *fakeTodosRepo1) GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	return nil, f.err
}

func (f *fakeTodosRepo1) UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, u models.TodoUpdate) (*models.Todo, error) {
	return nil, f.err
}

func (f *fakeTodosRepo1) DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	return nil, f.err
}

func (f *fakeTodosRepo1) EnsureIndexes(ctx context.Context) error { return nil }
