package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"skincare-backend/config"
	"skincare-backend/internal/auth"
	"skincare-backend/internal/database"
	"skincare-backend/internal/models"
	"skincare-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// Command flags
	createUser  = flag.Bool("create", false, "Create a new user")
	deleteUser  = flag.Bool("delete", false, "Delete a user")
	cleanTokens = flag.Bool("clean-tokens", false, "Remove expired blocklist entries")

	// User data flags
	email    = flag.String("email", "", "User's email")
	password = flag.String("password", "", "User's password")
	name     = flag.String("name", "", "User's name")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize database
	if err := database.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.GetDB())
	tokenRepo := repository.NewTokenRepository(database.GetDB())

	// Execute command
	switch {
	case *createUser:
		return handleCreateUser(userRepo)
	case *deleteUser:
		return handleDeleteUser(userRepo)
	case *cleanTokens:
		return handleCleanTokens(auth.NewBlocklistService(tokenRepo))
	default:
		flag.Usage()
		return fmt.Errorf("no command specified")
	}
}

func handleCreateUser(repo *repository.UserRepository) error {
	if *email == "" || *password == "" || *name == "" {
		return fmt.Errorf("email, password and name are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     *email,
		Password:  string(hashedPassword),
		Name:      *name,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %s created successfully\n", user.Email)
	return nil
}

func handleDeleteUser(repo *repository.UserRepository) error {
	if *email == "" {
		return fmt.Errorf("email is required")
	}

	user, err := repo.GetUserByEmail(*email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found", *email)
	}

	if err := repo.DeleteUser(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %s deleted successfully\n", *email)
	return nil
}

// handleCleanTokens is the on-demand counterpart of the scheduled
// sweep.
func handleCleanTokens(blocklist *auth.BlocklistService) error {
	count, err := blocklist.PurgeExpired(time.Now())
	if err != nil {
		return fmt.Errorf("failed to clean expired tokens: %w", err)
	}

	fmt.Printf("Expired tokens cleaned successfully (%d removed)\n", count)
	return nil
}
