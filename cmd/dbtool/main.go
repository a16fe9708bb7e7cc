package main

import (
	"database/sql"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer database.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/orders.json")
	if err := initAndSeed(database, seedPath); err != nil {
		logrus.Fatal(err)
	}
}

func initAndSeed(database *sql.DB, seedPath string) error {
	logrus.Info("Initializing database schema...")
	if err := repositories.InitSchema(database); err != nil {
		logrus.Fatalf("schema initialization failed: %v", err)
	}
	logrus.Info("Schema ready.")

	logrus.Info("Seeding database...")
	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}
	logrus.Info("Seeding complete.")

	return nil
}
