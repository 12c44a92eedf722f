package service

import (
	"context"
	"testing"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testTokenManager() security.TokenManager {
	return security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the payer and returns a token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager())

		userRepo.On("GetByEmail", ctx, "mia@test.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			if u.Email != "mia@test.com" || u.PasswordHash == "hunter2secret" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2secret")) == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).Return(nil)

		user, token, err := svc.Signup(ctx, "Mia", "mia@test.com", "", "hunter2secret")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.NotEmpty(t, token)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager())

		userRepo.On("GetByEmail", ctx, "mia@test.com").Return(&domain.User{ID: 1}, nil)

		_, _, err := svc.Signup(ctx, "Mia", "mia@test.com", "", "hunter2secret")
		assert.ErrorIs(t, err, domain.ErrConflict)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager())

		_, _, err := svc.Signup(ctx, "Mia", "mia@test.com", "", "short")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	stored := &domain.User{ID: 1, Email: "mia@test.com", PasswordHash: string(hash)}

	t.Run("valid credentials issue a token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tm := testTokenManager()
		svc := NewAuthService(userRepo, tm)

		userRepo.On("GetByEmail", ctx, "mia@test.com").Return(stored, nil)

		_, token, err := svc.Login(ctx, "mia@test.com", "hunter2secret")
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
	})

	t.Run("wrong password fails without leaking which part was wrong", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager())

		userRepo.On("GetByEmail", ctx, "mia@test.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "mia@test.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, testTokenManager())

		userRepo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "ghost@test.com", "hunter2secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RegisterDevice(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, testTokenManager())

	userRepo.On("UpdateFCMToken", ctx, int32(1), "device-token").Return(nil)
	assert.NoError(t, svc.RegisterDevice(ctx, 1, "device-token"))

	err := svc.RegisterDevice(ctx, 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
