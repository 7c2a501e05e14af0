package service

import (
	"context"
	"time"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"
	"receipt-ledger/pkg/apperror"

	"github.com/google/uuid"
)

// authService implements ports.AuthService.
type authService struct {
	users    ports.UserStore
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
}

// NewAuthService creates a new auth service.
func NewAuthService(users ports.UserStore, hashSvc ports.HashService, tokenSvc ports.TokenService) ports.AuthService {
	return &authService{
		users:    users,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
	}
}

// Register creates an account with the requested role.
func (s *authService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	hash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.InternalError(err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token. An unknown username
// and a wrong password return the same error, so login failures leak nothing
// about which accounts exist.
func (s *authService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	ok, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if !ok {
		return nil, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      user.Role,
	}, nil
}
