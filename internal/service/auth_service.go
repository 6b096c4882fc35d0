package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"civic-reports/internal/auth"
	"civic-reports/internal/model"
)

type AuthUserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
}

type AuthService struct {
	users  AuthUserStore
	tokens *auth.Manager
}

func NewAuthService(users AuthUserStore, tokens *auth.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Role        model.Role
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalid)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalid)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalid)
	}

	role := input.Role
	if role == "" {
		role = model.RoleCitizen
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role", ErrInvalid)
	}

	taken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email already in use", ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
