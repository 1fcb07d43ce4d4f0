package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"reservewise/internal/entities"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Strategy verifies a login. Exactly one is active per process.
type Strategy interface {
	Name() string
	Verify(ctx context.Context, email, password string) (*entities.User, error)
}

const (
	StrategyMock     = "mock"
	StrategyPassword = "password"
)

// Demo account accepted by the mock strategy.
const (
	MockEmail    = "user@example.com"
	MockPassword = "password"
	MockUserID   = "mock-uid-12345"
	MockName     = "Demo User"
)

type mockStrategy struct{}

// NewMockStrategy accepts only the demo account.
func NewMockStrategy() Strategy {
	return mockStrategy{}
}

func (mockStrategy) Name() string { return StrategyMock }

func (mockStrategy) Verify(ctx context.Context, email, password string) (*entities.User, error) {
	if !strings.EqualFold(strings.TrimSpace(email), MockEmail) || password != MockPassword {
		return nil, ErrInvalidCredentials
	}
	return &entities.User{ID: MockUserID, Email: MockEmail, DisplayName: MockName}, nil
}

// Account is an operator allowed in by the password strategy.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
}

type passwordStrategy struct {
	accounts map[string]Account
}

// NewPasswordStrategy checks bcrypt hashes for the given accounts.
func NewPasswordStrategy(accounts ...Account) (Strategy, error) {
	if len(accounts) == 0 {
		return nil, errors.New("password strategy needs at least one account")
	}
	s := &passwordStrategy{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		if a.Email == "" || a.PasswordHash == "" {
			return nil, fmt.Errorf("account %q: email and password hash are required", a.Email)
		}
		if _, err := bcrypt.Cost([]byte(a.PasswordHash)); err != nil {
			return nil, fmt.Errorf("account %q: invalid password hash: %w", a.Email, err)
		}
		if a.ID == "" {
			a.ID = a.Email
		}
		s.accounts[strings.ToLower(a.Email)] = a
	}
	return s, nil
}

func (s *passwordStrategy) Name() string { return StrategyPassword }

func (s *passwordStrategy) Verify(ctx context.Context, email, password string) (*entities.User, error) {
	a, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	// Comparamos el password hasheado
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &entities.User{ID: a.ID, Email: a.Email, DisplayName: a.DisplayName}, nil
}

// NewStrategy picks the strategy named in configuration.
func NewStrategy(name string, accounts ...Account) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", StrategyMock:
		return NewMockStrategy(), nil
	case StrategyPassword:
		return NewPasswordStrategy(accounts...)
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", name)
	}
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
