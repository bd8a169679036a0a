// Package memory implements the repository contracts over process memory.
// It is used where a running MongoDB is not available, mainly in tests.
package memory

import (
	"context"

	"github.com/dmitrijs2005/todoserver/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/users"
)

type RepositoryManager struct {
	users *UserRepository
	todos *TodoRepository
}

func (m *RepositoryManager) Users() users.Repository {
	return m.users
}

func (m *RepositoryManager) Todos() todos.Repository {
	return m.todos
}

func (m *RepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *RepositoryManager) Close(ctx context.Context) error {
	return nil
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		users: NewUserRepository(),
		todos: NewTodoRepository(),
	}
}
