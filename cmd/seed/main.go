package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xtrntr/tradelog/internal/apperrors"
	"github.com/xtrntr/tradelog/internal/auth"
	"github.com/xtrntr/tradelog/internal/db"
	"github.com/xtrntr/tradelog/internal/models"
	"github.com/xtrntr/tradelog/internal/trades"
	"github.com/xtrntr/tradelog/migrations"
)

// Seed the database with a demo user and test trades
func main() {
	connString := flag.String("db", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	email := flag.String("email", "trader1@example.com", "demo user email")
	password := flag.String("password", "password123", "demo user password")
	flag.Parse()

	if *connString == "" {
		log.Fatal("missing -db or DATABASE_URL")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	database, err := db.NewDB(ctx, *connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx, migrations.Init); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	tradeService := trades.NewTradeService(database, nil, logger)

	// First check if we already have trades
	existing, err := tradeService.List(ctx, models.TradeFilter{})
	if err != nil {
		log.Fatalf("Failed to check trades: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Database already has %d trades. No need to seed.\n", len(existing))
		return
	}

	// The signing secret is irrelevant here; seeding never issues tokens
	authService := auth.NewAuthService(database, auth.Config{BcryptCost: bcrypt.DefaultCost}, logger)
	if err := authService.Signup(ctx, *email, *password); err != nil && apperrors.KindOf(err) != apperrors.KindConflict {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	user, err := authService.EmailExists(ctx, *email)
	if err != nil || user == nil {
		log.Fatalf("Failed to load demo user: %v", err)
	}

	seedTrades := []models.NewTrade{
		{Type: models.TradeTypeBuy, UserID: user.ID, Symbol: "AAPL", Shares: 10, Price: 150.5},
		{Type: models.TradeTypeBuy, UserID: user.ID, Symbol: "MSFT", Shares: 5, Price: 410.25},
		{Type: models.TradeTypeSell, UserID: user.ID, Symbol: "AAPL", Shares: 4, Price: 155},
		{Type: models.TradeTypeBuy, UserID: user.ID, Symbol: "TSLA", Shares: 20, Price: 182.1},
		{Type: models.TradeTypeSell, UserID: user.ID, Symbol: "MSFT", Shares: 5, Price: 415},
	}
	for i, t := range seedTrades {
		id, err := tradeService.Create(ctx, t)
		if err != nil {
			log.Fatalf("Failed to create trade %d: %v", i+1, err)
		}
		fmt.Printf("Created %s %d %s @ %.2f (id %d)\n", t.Type, t.Shares, t.Symbol, t.Price, id)
	}

	fmt.Printf("Successfully seeded the database for %s!\n", *email)
}
