package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aoyama/task-dashboard/internal/apperr"
	"github.com/aoyama/task-dashboard/internal/auth"
	"github.com/aoyama/task-dashboard/internal/models"
	"github.com/aoyama/task-dashboard/internal/store"
)

// AccountService registers accounts and exchanges credentials for session
// tokens. It is the only code that touches password hashes.
type AccountService struct {
	users  store.UserStore
	tokens *auth.Manager
}

func NewAccountService(users store.UserStore, tokens *auth.Manager) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// Register creates an account and returns it with a fresh session token.
// Email is the account identity and must be unique.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", apperr.ErrInvalidInput)
	}

	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", apperr.ErrInvalidInput)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the account with a fresh session
// token. Unknown email and wrong password are deliberately indistinguishable.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
