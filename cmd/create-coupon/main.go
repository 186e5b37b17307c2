package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/config"
	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: go run cmd/create-coupon/main.go <code> <type> <value> <minimum-order> [valid-days]")
		fmt.Println("Example: go run cmd/create-coupon/main.go EID10 percentage 10 500 30")
		os.Exit(1)
	}

	code := os.Args[1]
	couponType := os.Args[2]

	value, err := strconv.ParseFloat(os.Args[3], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid value: %v\n", err)
		os.Exit(1)
	}

	minimumOrder, err := strconv.ParseFloat(os.Args[4], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid minimum order amount: %v\n", err)
		os.Exit(1)
	}

	validDays := 30
	if len(os.Args) > 5 {
		validDays, err = strconv.Atoi(os.Args[5])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid valid-days: %v\n", err)
			os.Exit(1)
		}
	}

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

	repos := postgres.NewRepositories(db, logger)

	now := time.Now()
	coupon := &domain.Coupon{
		Code:               code,
		Value:              value,
		Type:               couponType,
		Title:              fmt.Sprintf("Coupon %s", code),
		MinimumOrderAmount: minimumOrder,
		Status:             "active",
		StartDate:          now,
		EndingDate:         now.AddDate(0, 0, validDays),
	}

	if err := repos.Coupon.Create(context.Background(), coupon); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create coupon: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Coupon created successfully!\n\n")
	fmt.Printf("Coupon ID: %s\n", coupon.ID.String())
	fmt.Printf("Code: %s\n", coupon.Code)
	fmt.Printf("Type: %s, Value: %.2f\n", coupon.Type, coupon.Value)
	fmt.Printf("Minimum order: %.2f\n", coupon.MinimumOrderAmount)
	fmt.Printf("Valid until: %s\n", coupon.EndingDate.Format("2006-01-02"))
}
