package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfadel/tripcollab/internal/user"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service handles registration and login
type Service struct {
	users  *user.Service
	tokens *TokenManager
}

// NewService creates a new auth service
func NewService(users *user.Service, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account and returns a signed token for it
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (string, *user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u, err := s.users.Create(ctx, &user.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// CurrentUser loads the account a verified token belongs to
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Login verifies credentials and returns a signed token.
// A missing account and a wrong password produce the same error so the
// response does not reveal which emails are registered.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
