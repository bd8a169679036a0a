package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoRepository keeps todos in insertion order, which is the order
// ListByOwner returns them in.
type TodoRepository struct {
	mu    sync.RWMutex
	todos []*models.Todo
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{}
}

func copyTodo(t *models.Todo) *models.Todo {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID.IsZero() {
		todo.ID = primitive.NewObjectID()
	}
	r.todos = append(r.todos, copyTodo(todo))
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*models.Todo, 0)
	for _, t := range r.todos {
		if t.Creator == owner {
			res = append(res, copyTodo(t))
		}
	}
	return res, nil
}

func (r *TodoRepository) GetByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id, owner)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return copyTodo(r.todos[i]), nil
}

func (r *TodoRepository) UpdateByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID, update models.TodoUpdate) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id, owner)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	t := r.todos[i]
	if update.Text != nil {
		t.Text = *update.Text
	}
	t.Completed = update.Completed
	t.CompletedAt = nil
	if update.CompletedAt != nil {
		at := *update.CompletedAt
		t.CompletedAt = &at
	}
	return copyTodo(t), nil
}

func (r *TodoRepository) DeleteByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id, owner)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	t := r.todos[i]
	r.todos = slices.Delete(r.todos, i, i+1)
	return t, nil
}

func (r *TodoRepository) index(id, owner primitive.ObjectID) int {
	return slices.IndexFunc(r.todos, func(t *models.Todo) bool {
		return t.ID == id && t.Creator == owner
	})
}
