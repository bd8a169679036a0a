package httpserver

import (
	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req credentialsRequest
	s.bind(c, &req)

	user, err := s.users.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		s.logger.Info(c.UserContext(), "registration rejected", "error", err)
		return empty(c, fiber.StatusBadRequest)
	}

	return s.issueToken(c, user)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req credentialsRequest
	s.bind(c, &req)

	user, err := s.users.FindByCredentials(c.UserContext(), req.Email, req.Password)
	if err != nil {
		s.logger.Info(c.UserContext(), "login rejected", "error", err)
		return empty(c, fiber.StatusBadRequest)
	}

	return s.issueToken(c, user)
}

// issueToken stores a fresh auth token for user and returns it in the
// x-auth header alongside the user body.
func (s *Server) issueToken(c *fiber.Ctx, user *models.User) error {
	token, err := s.users.GenerateAuthToken(c.UserContext(), user)
	if err != nil {
		s.logger.Error(c.UserContext(), "token generation failed", "error", err, "user_id", user.ID.Hex())
		return empty(c, fiber.StatusBadRequest)
	}

	c.Set(common.AuthTokenHeaderName, token)
	return c.JSON(user)
}

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.users.RemoveToken(c.UserContext(), currentUser(c), currentToken(c)); err != nil {
		s.logger.Error(c.UserContext(), "logout failed", "error", err)
		return empty(c, fiber.StatusBadRequest)
	}

	return empty(c, fiber.StatusOK)
}
