package database

import (
	"fmt"
	"log"
	"os"

	"voiceleads-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
}

func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.UserWorkspace{},
		&models.Contact{},
		&models.UsageLog{},
		&models.IdempotencyKey{},
	)
	if err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}
}
