package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"musetix/internal/shared/config"
	"musetix/internal/shared/database"
	"musetix/internal/staff"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the staff accounts needed to operate the admin surface. Safe to run
// repeatedly.
func main() {
	fmt.Println("🌱 Starting Musetix Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	fmt.Println("🎉 Seeding completed! Database is ready.")
}

func seedAdmin(ctx context.Context, db *database.DB) error {
	gormDB := db.GetPostgreSQL()

	email := getEnv("SEED_ADMIN_EMAIL", "admin@musetix.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin123")

	var count int64
	if err := gormDB.WithContext(ctx).Model(&staff.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		fmt.Printf("✅ Admin account %s already exists, skipping\n", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &staff.User{
		ID:       uuid.New(),
		Name:     "Museum Admin",
		Email:    email,
		Password: string(hashed),
		Role:     staff.RoleAdmin,
	}

	if err := gormDB.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	fmt.Printf("✅ Created admin account %s\n", email)
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
