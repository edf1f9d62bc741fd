package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"ai-companion-be/internal/model"
	"ai-companion-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 14 Tables...")

	models := []interface{}{
		&model.User{},
		&model.ChatMessage{},
		&model.JournalEntry{},
		&model.EntityMention{},
		&model.Lead{},
		&model.KnownEntity{},
		&model.GlossaryTerm{},
		&model.Task{},
		&model.Goal{},
		&model.OnboardingState{},
		&model.QuestionAnswer{},
		&model.ProviderRegistration{},
		&model.SyncAuditLog{},
		&model.DreamRun{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Migration completed successfully.")
}
