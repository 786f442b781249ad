package service

import (
	"context"
	"strings"
	"time"

	"github.com/campusmitra/portal/internal/model"
	appErr "github.com/campusmitra/portal/internal/pkg/errors"
	"github.com/campusmitra/portal/internal/pkg/jwt"
	"github.com/campusmitra/portal/internal/pkg/password"
	"github.com/campusmitra/portal/internal/repo"
)

type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a student account. Teacher and admin roles are only
// assigned out of band (config bootstrap or an existing admin).
func (s *AuthService) Register(ctx context.Context, email, plainPassword, name string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", appErr.Validation("email", "valid email is required")
	}
	if len(plainPassword) < 6 {
		return nil, "", appErr.Validation("password", "password must be at least 6 characters")
	}
	now := time.Now().UnixMilli()
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		ID:           newID(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         model.RoleStudent,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Role, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// EnsureAdmin bootstraps the configured admin account at startup. An
// existing account is promoted rather than duplicated.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, plainPassword string) error {
	if email == "" || plainPassword == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UnixMilli()
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == model.RoleAdmin {
			return nil
		}
		return s.users.UpdateRole(ctx, existing.ID, model.RoleAdmin, now)
	}
	if !appErr.IsNotFound(err) {
		return err
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}
	return s.users.Create(ctx, &model.User{
		ID:           newID(),
		Email:        email,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	})
}
