package service

import (
	"context"
	"testing"
	"time"

	"tindapos/internal/dto"
	"tindapos/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func testUser(t *testing.T, email, password, role string, active bool) *model.User {
	t.Helper()
	// cost 4 keeps the test fast; production uses a higher cost
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	t.Run("returns a signed token with the user's claims", func(t *testing.T) {
		u := testUser(t, "maria@example.com", "s3cret", model.RoleCashier, true)
		sink := &recordingSink{}
		svc := NewAuthService(newStubUserRepo(u), sink, testSecret, time.Hour)

		resp, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "maria@example.com", Password: "s3cret",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, 3600, resp.ExpiresIn)
		assert.Equal(t, u.ID.String(), resp.User.ID)

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)
		assert.Equal(t, u.ID.String(), claims.UserID)
		assert.Equal(t, model.RoleCashier, claims.Role)

		require.Len(t, sink.byAction("login"), 1)
	})

	t.Run("wrong password is rejected and recorded", func(t *testing.T) {
		u := testUser(t, "maria@example.com", "s3cret", model.RoleCashier, true)
		sink := &recordingSink{}
		svc := NewAuthService(newStubUserRepo(u), sink, testSecret, time.Hour)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "maria@example.com", Password: "wrong",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.Len(t, sink.byAction("login_failed"), 1)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		svc := NewAuthService(newStubUserRepo(), &recordingSink{}, testSecret, time.Hour)
		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "nobody@example.com", Password: "whatever",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled accounts cannot log in", func(t *testing.T) {
		u := testUser(t, "gone@example.com", "s3cret", model.RoleCashier, false)
		sink := &recordingSink{}
		svc := NewAuthService(newStubUserRepo(u), sink, testSecret, time.Hour)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email: "gone@example.com", Password: "s3cret",
		})
		require.ErrorIs(t, err, ErrAccountDisabled)
		require.Len(t, sink.byAction("login_blocked"), 1)
	})
}

func TestRegister(t *testing.T) {
	t.Run("defaults new users to cashier", func(t *testing.T) {
		users := newStubUserRepo()
		svc := NewAuthService(users, &recordingSink{}, testSecret, time.Hour)

		resp, err := svc.Register(context.Background(), dto.RegisterRequest{
			Name: "Juan", Email: "juan@example.com", Password: "password1",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleCashier, resp.Role)
		assert.True(t, resp.IsActive)

		stored, err := users.FindByEmail(context.Background(), "juan@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "password1", stored.PasswordHash)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		u := testUser(t, "taken@example.com", "pw", model.RoleCashier, true)
		svc := NewAuthService(newStubUserRepo(u), &recordingSink{}, testSecret, time.Hour)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{
			Name: "Dup", Email: "taken@example.com", Password: "password1",
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestChangePassword(t *testing.T) {
	u := testUser(t, "maria@example.com", "oldpass", model.RoleCashier, true)
	users := newStubUserRepo(u)
	svc := NewAuthService(users, &recordingSink{}, testSecret, time.Hour)

	err := svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "nope", NewPassword: "newpass123",
	})
	require.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), u.ID, dto.ChangePasswordRequest{
		CurrentPassword: "oldpass", NewPassword: "newpass123",
	})
	require.NoError(t, err)

	updated, err := users.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("newpass123")))
}
