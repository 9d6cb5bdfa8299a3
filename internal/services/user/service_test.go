package user

import (
	"context"
	"testing"

	"tembo/internal/models"
	"tembo/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memoryUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateUser
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memoryUserRepo) IncrementTokenVersion(userID uint) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TokenVersion++
	return nil
}

func newTestService() (*Service, *memoryUserRepo, *repositories.MemoryWalletRepository) {
	userRepo := newMemoryUserRepo()
	walletRepo := repositories.NewMemoryWalletRepository()
	return NewService(userRepo, walletRepo), userRepo, walletRepo
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)
	assert.NotEqual(t, "s3cret", u.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret")))

	_, err = svc.Register(ctx, "Ada Again", "ada@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestResolveUser(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)

	got, err := svc.ResolveUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = svc.ResolveUser(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestSetBlacklisted(t *testing.T) {
	svc, _, walletRepo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)
	require.NoError(t, walletRepo.Create(&models.Wallet{OwnerID: u.ID, Name: "Primary"}))
	require.NoError(t, walletRepo.Create(&models.Wallet{OwnerID: u.ID, Name: "Savings"}))

	require.NoError(t, svc.SetBlacklisted(ctx, u.ID, true))
	for _, name := range []string{"Primary", "Savings"} {
		w, err := walletRepo.Get(u.ID, name)
		require.NoError(t, err)
		assert.True(t, w.Blacklisted)
	}

	require.NoError(t, svc.SetBlacklisted(ctx, u.ID, false))
	w, err := walletRepo.Get(u.ID, "Primary")
	require.NoError(t, err)
	assert.False(t, w.Blacklisted)

	assert.ErrorIs(t, svc.SetBlacklisted(ctx, 999, true), repositories.ErrUserNotFound)
}
