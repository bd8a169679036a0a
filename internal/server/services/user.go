// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, and issuing and
// revoking the auth tokens stored on each user.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/auth"
	"github.com/dmitrijs2005/todoserver/internal/server/config"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// UserService provides account operations:
// - Register: create users with a bcrypt-hashed password
// - FindByCredentials: check email and password
// - GenerateAuthToken / RemoveToken: issue and revoke stored tokens
// - FindByToken: resolve a token to its owner
type UserService struct {
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	hashCost    int
	validate    *validator.Validate
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		hashCost:    cfg.PasswordHashCost,
		validate:    validator.New(),
	}
}

// Register validates the input, hashes the password and stores the user.
// Invalid input and an email already in use both yield common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	c := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		return nil, fmt.Errorf("error hashing password: %v", common.ErrorInternal)
	}

	user := &models.User{Email: c.Email, Password: string(hash)}

	repo := s.repomanager.Users()
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("error creating user: %w", common.ErrorValidation)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// FindByCredentials returns the user owning email if password matches its
// hash. Unknown email and wrong password are both common.ErrorUnauthorized.
func (s *UserService) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GenerateAuthToken issues an auth token for user, stores it and appends it
// to user.Tokens.
func (s *UserService) GenerateAuthToken(ctx context.Context, user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), common.TokenPurposeAuth, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("error generating token: %v", common.ErrorInternal)
	}

	t := models.Token{Access: common.TokenPurposeAuth, Token: token}

	repo := s.repomanager.Users()
	if err := repo.AddToken(ctx, user.ID, t); err != nil {
		return "", fmt.Errorf("error saving token: %w", err)
	}

	user.Tokens = append(user.Tokens, t)

	return token, nil
}

// RemoveToken revokes token. Removing a token that is not stored succeeds.
func (s *UserService) RemoveToken(ctx context.Context, user *models.User, token string) error {
	repo := s.repomanager.Users()
	if err := repo.RemoveToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("error removing token: %w", err)
	}
	return nil
}

// FindByToken verifies token and returns its owner if the token is still in
// the owner's stored list. Every failure is common.ErrorUnauthorized.
func (s *UserService) FindByToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users()
	user, err := repo.GetUserByToken(ctx, id, token, common.TokenPurposeAuth)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
