// Package user manages accounts in the user directory and implements the
// receiver-resolution contract consumed by the wallet engine.
package user

import (
	"context"
	"errors"
	"fmt"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo       repositories.UserRepository
	walletRepo repositories.WalletRepository
}

func NewService(repo repositories.UserRepository, walletRepo repositories.WalletRepository) *Service {
	if repo == nil {
		panic("user repo is required")
	}
	if walletRepo == nil {
		panic("wallet repo is required")
	}
	return &Service{repo: repo, walletRepo: walletRepo}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     "user",
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// ResolveUser implements wallet.UserResolver.
func (s *Service) ResolveUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.repo.GetByID(userID)
}

// GetByEmail looks a user up by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

// SetBlacklisted administratively blocks (or unblocks) every wallet of a
// user. It flips only the blacklist flag; the engine stays the sole
// writer of balances and versions.
func (s *Service) SetBlacklisted(ctx context.Context, userID uint, blacklisted bool) error {
	if _, err := s.repo.GetByID(userID); err != nil {
		return err
	}
	return s.walletRepo.SetBlacklisted(userID, blacklisted)
}
