package httpserver

import (
	"errors"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

// Request bodies list the only fields a client may set. Anything else in
// the payload is dropped by decoding.

type createTodoRequest struct {
	Text string `json:"text"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed any     `json:"completed"`
}

func (s *Server) createTodo(c *fiber.Ctx) error {
	var req createTodoRequest
	s.bind(c, &req)

	user := currentUser(c)
	todo, err := s.todos.Create(c.UserContext(), user.ID, req.Text)
	if err != nil {
		s.logger.Warn(c.UserContext(), "create todo failed", "error", err)
		return empty(c, fiber.StatusBadRequest)
	}

	return c.JSON(todo)
}

func (s *Server) listTodos(c *fiber.Ctx) error {
	user := currentUser(c)
	todos, err := s.todos.ListForOwner(c.UserContext(), user.ID)
	if err != nil {
		s.logger.Error(c.UserContext(), "list todos failed", "error", err)
		return empty(c, fiber.StatusBadRequest)
	}

	return c.JSON(fiber.Map{"todos": todos})
}

func (s *Server) getTodo(c *fiber.Ctx) error {
	user := currentUser(c)
	todo, err := s.todos.GetOne(c.UserContext(), user.ID, c.Params("id"))
	if err != nil {
		return s.todoError(c, err)
	}

	return c.JSON(fiber.Map{"todo": todo})
}

func (s *Server) deleteTodo(c *fiber.Ctx) error {
	user := currentUser(c)
	todo, err := s.todos.Delete(c.UserContext(), user.ID, c.Params("id"))
	if err != nil {
		return s.todoError(c, err)
	}

	return c.JSON(fiber.Map{"todo": todo})
}

func (s *Server) updateTodo(c *fiber.Ctx) error {
	var req updateTodoRequest
	s.bind(c, &req)

	// Only a JSON true completes a todo; any other value, or none, reopens it.
	patch := services.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed == true,
	}

	user := currentUser(c)
	todo, err := s.todos.Update(c.UserContext(), user.ID, c.Params("id"), patch)
	if err != nil {
		return s.todoError(c, err)
	}

	return c.JSON(fiber.Map{"todo": todo})
}

// todoError maps a failed lookup to 404 and everything else to 400.
func (s *Server) todoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return empty(c, fiber.StatusNotFound)
	}
	s.logger.Warn(c.UserContext(), "todo request failed", "error", err, "todo_id", c.Params("id"))
	return empty(c, fiber.StatusBadRequest)
}

// bind decodes the JSON body into req. A body that cannot be decoded leaves
// the fields it did not reach at their zero values.
func (s *Server) bind(c *fiber.Ctx, req any) {
	if len(c.Body()) == 0 {
		return
	}
	if err := c.App().Config().JSONDecoder(c.Body(), req); err != nil {
		s.logger.Debug(c.UserContext(), "ignoring malformed body", "error", err)
	}
}
