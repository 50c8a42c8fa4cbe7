package service

import (
	"context"
	"errors"

	"ginraidee/analytics-svc/internal/domain"
	"ginraidee/auth"
	"ginraidee/logging"
)

type AuthService struct {
	repo AdminRepository
	jwt  *auth.JWTManager
}

func NewAuthService(repo AdminRepository, jwt *auth.JWTManager) *AuthService {
	return &AuthService{repo: repo, jwt: jwt}
}

// Login returns a signed admin token. Unknown users and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.AdminByUsername(ctx, username)
	if errors.Is(err, domain.ErrAdminNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(admin.Username, auth.RoleAdmin)
}

// EnsureDefaultAdmin creates the bootstrap account when the admins table is empty.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	n, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.CreateAdmin(ctx, username, hash); err != nil {
		return err
	}
	logging.Warn().Str("username", username).Msg("created default admin, change its password")
	return nil
}
