package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoserver/internal/common"
	"github.com/dmitrijs2005/todoserver/internal/server/auth"
	"github.com/dmitrijs2005/todoserver/internal/server/config"
	"github.com/dmitrijs2005/todoserver/internal/server/models"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/memory"
	"github.com/dmitrijs2005/todoserver/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "k"

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:        testSecret,
		PasswordHashCost: bcrypt.MinCost,
	}
	return NewUserService(rm, cfg)
}

func TestRegister_HashesAndTrims(t *testing.T) {
	s := newUserService(t, memory.NewRepositoryManager())

	u, err := s.Register(context.Background(), "  alice@example.com ", "s3cret!")
	require.NoError(t, err)
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "s3cret!", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret!")))
	assert.Empty(t, u.Tokens)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "pw"},
		{"blank email", "   ", "pw"},
		{"malformed email", "not-an-email", "pw"},
		{"empty password", "a@example.com", ""},
		{"password too long", "a@example.com", strings.Repeat("x", 73)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newUserService(t, memory.NewRepositoryManager())
			_, err := s.Register(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "a@example.com", "pw1")
	require.NoError(t, err)

	_, err = s.Register(context.Background(), "a@example.com", "pw2")
	assert.ErrorIs(t, err, common.ErrorValidation)

	u, err := rm.Users().GetUserByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw1")))
}

func TestRegister_StoreError(t *testing.T) {
	s := newUserService(t, &fakeRepoManager1{u: &fakeUsersRepo1{createErr: errBoom{}}})

	_, err := s.Register(context.Background(), "a@example.com", "pw")
	if err == nil || !regexp.MustCompile(`error creating user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped create error, got %v", err)
	}
	assert.False(t, errors.Is(err, common.ErrorValidation))
}

func TestFindByCredentials_Flows(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	registered, err := s.Register(ctx, "a@example.com", "right")
	require.NoError(t, err)

	u, err := s.FindByCredentials(ctx, "a@example.com", "right")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = s.FindByCredentials(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.FindByCredentials(ctx, "ghost@example.com", "right")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	sIE := newUserService(t, &fakeRepoManager1{u: &fakeUsersRepo1{getErr: errBoom{}}})
	_, err = sIE.FindByCredentials(ctx, "a@example.com", "right")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestGenerateAuthToken_StoresAndResolves(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	token, err := s.GenerateAuthToken(ctx, u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, u.HasToken(token, common.TokenPurposeAuth))

	claims, err := auth.ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)
	assert.Equal(t, common.TokenPurposeAuth, claims.Access)

	found, err := s.FindByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestGenerateAuthToken_StoreError(t *testing.T) {
	s := newUserService(t, &fakeRepoManager1{u: &fakeUsersRepo1{addErr: errBoom{}}})
	u := &models.User{ID: primitive.NewObjectID()}

	_, err := s.GenerateAuthToken(context.Background(), u)
	if err == nil || !regexp.MustCompile(`error saving token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped add error, got %v", err)
	}
	assert.Empty(t, u.Tokens)
}

func TestRemoveToken_Revokes(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	token, err := s.GenerateAuthToken(ctx, u)
	require.NoError(t, err)

	require.NoError(t, s.RemoveToken(ctx, u, token))
	_, err = s.FindByToken(ctx, token)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	// second removal is a no-op
	assert.NoError(t, s.RemoveToken(ctx, u, token))
}

func TestRemoveToken_StoreError(t *testing.T) {
	s := newUserService(t, &fakeRepoManager1{u: &fakeUsersRepo1{removeErr: errBoom{}}})

	err := s.RemoveToken(context.Background(), &models.User{ID: primitive.NewObjectID()}, "t")
	if err == nil || !regexp.MustCompile(`error removing token: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped remove error, got %v", err)
	}
}

func TestFindByToken_Rejects(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	u, err := s.Register(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	notStored, err := auth.GenerateToken(u.ID.Hex(), common.TokenPurposeAuth, []byte(testSecret))
	require.NoError(t, err)
	otherSecret, err := auth.GenerateToken(u.ID.Hex(), common.TokenPurposeAuth, []byte("other"))
	require.NoError(t, err)
	badID, err := auth.GenerateToken("not-hex", common.TokenPurposeAuth, []byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "abc.def.ghi"},
		{"valid but not stored", notStored},
		{"wrong secret", otherSecret},
		{"malformed user id", badID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.FindByToken(ctx, tt.token)
			assert.ErrorIs(t, err, common.ErrorUnauthorized)
		})
	}
}
