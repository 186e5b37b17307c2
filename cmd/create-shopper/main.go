package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatbazar/marketplace-api/internal/config"
	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/create-shopper/main.go <name> <phone> <access-token>")
		fmt.Println("Example: go run cmd/create-shopper/main.go \"Rahim Uddin\" \"01712345678\" \"rahim-token-12345\"")
		os.Exit(1)
	}

	name := os.Args[1]
	phone := os.Args[2]
	token := os.Args[3]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	tokenHash, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash access token: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(db, logger)

	shopper := &domain.Shopper{
		Name:      name,
		Phone:     phone,
		TokenHash: string(tokenHash),
		IsActive:  true,
	}

	if err := repos.Shopper.Create(context.Background(), shopper); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create shopper: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Shopper created successfully!\n\n")
	fmt.Printf("Shopper ID: %s\n", shopper.ID.String())
	fmt.Printf("Name: %s\n", shopper.Name)
	fmt.Printf("Access token: %s\n", token)
	fmt.Printf("\nUse this token in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
