// Command seed provisions a demo user with a funded primary wallet.
package main

import (
	"context"
	"log"
	"os"

	"tembo/internal/config"
	"tembo/internal/models"
	"tembo/internal/repositories"
	"tembo/internal/services/user"
	"tembo/internal/services/wallet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Seed user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	seedUser := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Seed User",
		Role:     "admin",
	}
	if err := repositories.DB.Create(&seedUser).Error; err != nil {
		log.Fatal("Failed to create seed user:", err)
	}

	walletRepo := repositories.NewWalletRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)
	userService := user.NewService(userRepo, walletRepo)
	engine := wallet.NewService(walletRepo, wallet.NoopCache{}, userService, wallet.Config{}, nil)

	ctx := context.Background()
	if _, err := engine.CreateWallet(ctx, seedUser.ID, "Primary"); err != nil {
		log.Fatal("Failed to create wallet:", err)
	}
	if _, err := engine.LoadMoney(ctx, seedUser.ID, "Primary", decimal.RequireFromString("500.00"), uuid.NewString()); err != nil {
		log.Fatal("Failed to fund wallet:", err)
	}

	log.Println("Seed account created")
}
