package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/Ekediee/course-allocation-backend/internal/config"
	"github.com/Ekediee/course-allocation-backend/internal/database"
	"github.com/Ekediee/course-allocation-backend/internal/logger"
	"github.com/Ekediee/course-allocation-backend/internal/model"
	"github.com/Ekediee/course-allocation-backend/internal/repository"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Superadmin User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Enter Department ID (default 1): ")
	deptStr, _ := reader.ReadString('\n')
	deptStr = strings.TrimSpace(deptStr)
	departmentID := 1
	if deptStr != "" {
		p, err := strconv.Atoi(deptStr)
		if err != nil {
			fmt.Println("Error: Department ID must be a number")
			return
		}
		departmentID = p
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Role:         model.RoleSuperadmin,
		DepartmentID: &departmentID,
		PasswordHash: string(hashedPassword),
	}
	profile := &model.AdminUser{DepartmentID: departmentID}

	if err := userRepo.CreateAdmin(ctx, user, profile); err != nil {
		log.Fatal().Err(err).Msg("Failed to create superadmin")
	}

	fmt.Printf("\nSuccess! Superadmin '%s' (%s) created with ID: %d\n", user.Name, user.Email, user.ID)
}
