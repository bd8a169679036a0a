// Package repomanager vends the repositories used by the services and owns
// the lifecycle of the underlying store connection.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todoserver/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Todos() todos.Repository
	RunMigrations(ctx context.Context) error
	Close(ctx context.Context) error
}
