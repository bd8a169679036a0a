package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/repomanager"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoPatch holds the fields a client may change on a todo. A nil Text
// leaves the text as is.
type TodoPatch struct {
	Text      *string
	Completed bool
}

// TodoService implements the owner-scoped todo operations. Todo ids arrive as
// hex strings; a malformed id is reported as common.ErrorNotFound, the same
// as a todo that is missing or owned by someone else.
type TodoService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTodoService(m repomanager.RepositoryManager) *TodoService {
	return &TodoService{repomanager: m, now: time.Now}
}

func (s *TodoService) Create(ctx context.Context, owner primitive.ObjectID, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", common.ErrorValidation)
	}

	repo := s.repomanager.Todos()
	todo, err := repo.Create(ctx, &models.Todo{Text: text, Creator: owner})
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	return todo, nil
}

func (s *TodoService) ListForOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error) {
	repo := s.repomanager.Todos()
	todos, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	return todos, nil
}

func (s *TodoService) GetOne(ctx context.Context, owner primitive.ObjectID, todoID string) (*models.Todo, error) {
	id, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Todos()
	todo, err := repo.GetByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, wrapLookup("error fetching todo", err)
	}
	return todo, nil
}

// Update applies patch. Completing a todo stamps CompletedAt with the current
// time in epoch milliseconds; anything else clears both fields.
func (s *TodoService) Update(ctx context.Context, owner primitive.ObjectID, todoID string, patch TodoPatch) (*models.Todo, error) {
	id, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	update := models.TodoUpdate{Completed: patch.Completed}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text must not be empty", common.ErrorValidation)
		}
		update.Text = &text
	}
	if patch.Completed {
		at := s.now().UnixMilli()
		update.CompletedAt = &at
	}

	repo := s.repomanager.Todos()
	todo, err := repo.UpdateByIDAndOwner(ctx, id, owner, update)
	if err != nil {
		return nil, wrapLookup("error updating todo", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, owner primitive.ObjectID, todoID string) (*models.Todo, error) {
	id, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Todos()
	todo, err := repo.DeleteByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, wrapLookup("error deleting todo", err)
	}
	return todo, nil
}

func wrapLookup(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
