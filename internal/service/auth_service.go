package service

import (
	"context"
	"errors"
	"time"

	"tindapos/internal/audit"
	"tindapos/internal/dto"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error
	Logout(ctx context.Context, userID uuid.UUID)
}

type authService struct {
	users     repository.UserRepository
	sink      audit.EventSink
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, sink audit.EventSink, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:     users,
		sink:      sink,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleAuth, "login_failed",
				"login attempt with unknown email", nil,
				map[string]interface{}{"email": req.Email})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleAuth, "login_failed",
			"login attempt with wrong password", &user.ID,
			map[string]interface{}{"email": req.Email})
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleAuth, "login_blocked",
			"login attempt on disabled account", &user.ID, nil)
		return nil, ErrAccountDisabled
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleAuth, "login",
		user.Name+" logged in", &user.ID, nil)

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.tokenTTL.Seconds()),
		User:      toUserResponse(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleCashier
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleAuth, "register",
		"user registered: "+user.Email, &user.ID,
		map[string]interface{}{"role": user.Role})

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		s.sink.Emit(ctx, audit.LevelWarn, audit.ModuleAuth, "password_change_failed",
			"password change attempt with wrong current password", &user.ID, nil)
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleAuth, "password_changed",
		user.Name+" changed their password", &user.ID, nil)
	return nil
}

// Logout only records the event. Tokens are stateless; clients discard them.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) {
	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleAuth, "logout", "user logged out", &userID, nil)
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID.String(),
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
