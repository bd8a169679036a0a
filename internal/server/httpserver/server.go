// Package httpserver exposes the todo and user services over HTTP using
// Fiber. Every failure response carries an empty body; the status code is
// the only signal a client gets.
package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/todoserver/internal/logging"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/dmitrijs2005/todoserver/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService is the part of services.UserService the handlers use.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	FindByCredentials(ctx context.Context, email, password string) (*models.User, error)
	GenerateAuthToken(ctx context.Context, user *models.User) (string, error)
	RemoveToken(ctx context.Context, user *models.User, token string) error
	FindByToken(ctx context.Context, token string) (*models.User, error)
}

// TodoService is the part of services.TodoService the handlers use.
type TodoService interface {
	Create(ctx context.Context, owner primitive.ObjectID, text string) (*models.Todo, error)
	ListForOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Todo, error)
	GetOne(ctx context.Context, owner primitive.ObjectID, todoID string) (*models.Todo, error)
	Update(ctx context.Context, owner primitive.ObjectID, todoID string, patch services.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, owner primitive.ObjectID, todoID string) (*models.Todo, error)
}

type Options struct {
	Address         string
	AuthRateLimit   int
	ShutdownTimeout time.Duration
}

type Server struct {
	app    *fiber.App
	opts   Options
	users  UserService
	todos  TodoService
	logger logging.Logger
}

func NewServer(opts Options, l logging.Logger, us UserService, ts TodoService) *Server {
	s := &Server{
		opts:   opts,
		users:  us,
		todos:  ts,
		logger: l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(s.requestLogger())
	s.app.Use(recover.New())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.health)

	todos := s.app.Group("/todos", s.authenticate)
	todos.Post("/", s.createTodo)
	todos.Get("/", s.listTodos)
	todos.Get("/:id", s.getTodo)
	todos.Delete("/:id", s.deleteTodo)
	todos.Patch("/:id", s.updateTodo)

	credentials := []fiber.Handler{}
	if s.opts.AuthRateLimit > 0 {
		credentials = append(credentials, rateLimitCredentials(s.opts.AuthRateLimit))
	}

	s.app.Post("/users", append(credentials, s.register)...)
	s.app.Post("/users/login", append(credentials, s.login)...)
	s.app.Get("/users/me", s.authenticate, s.me)
	s.app.Delete("/users/me/token", s.authenticate, s.logout)
}

// handleError turns errors that escaped a handler into an empty response.
// Fiber errors keep their code; anything else is a 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	} else {
		s.logger.Error(c.UserContext(), "unhandled error", "error", err, "path", c.Path())
	}

	return empty(c, code)
}

// Run serves until ctx is cancelled, then shuts down, waiting up to
// ShutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.opts.ShutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := s.app.Listen(s.opts.Address); err != nil {
		return err
	}

	return nil
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func empty(c *fiber.Ctx, code int) error {
	return c.Status(code).Send(nil)
}
