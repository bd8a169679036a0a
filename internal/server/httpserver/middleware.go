package httpserver

import (
	"time"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ctxKey string

const (
	userKey  ctxKey = "user"
	tokenKey ctxKey = "token"
)

// authenticate resolves the x-auth header to a user. Requests without a
// usable token stop here with an empty 401.
func (s *Server) authenticate(c *fiber.Ctx) error {
	token := c.Get(common.AuthTokenHeaderName)
	if token == "" {
		return empty(c, fiber.StatusUnauthorized)
	}

	user, err := s.users.FindByToken(c.UserContext(), token)
	if err != nil {
		return empty(c, fiber.StatusUnauthorized)
	}

	c.Locals(userKey, user)
	c.Locals(tokenKey, token)

	return c.Next()
}

func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userKey).(*models.User)
	return u
}

func currentToken(c *fiber.Ctx) string {
	t, _ := c.Locals(tokenKey).(string)
	return t
}

// requestLogger tags each request with an id, echoed in X-Request-ID, and
// logs one line per request once the response status is known.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(common.RequestIDHeaderName, id)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = empty(c, fiber.StatusInternalServerError)
			}
		}

		s.logger.Info(c.UserContext(), "request",
			"request_id", id,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
		)

		return nil
	}
}
