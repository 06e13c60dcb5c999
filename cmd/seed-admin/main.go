package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-portal.backend/internal/config"
	"campus-portal.backend/internal/domain/entities"
	domainerrors "campus-portal.backend/internal/domain/errors"
	"campus-portal.backend/internal/infrastructure/models"
	infrarepos "campus-portal.backend/internal/infrastructure/repositories"
	"campus-portal.backend/pkg/crypto"
)

// seed-admin provisions the bootstrap administrator account together
// with its allow-list entry, in one transaction. Running it twice is a
// no-op.

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	openSeedDB = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.Driver == "postgres" {
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.URL(),
				PreferSimpleProtocol: true,
			}), &gorm.Config{})
		}
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}
)

type seedInput struct {
	Username  string
	Password  string
	StudentID string
	Name      string
	Email     string
	Phone     string
}

func parseFlags(args []string) (*seedInput, error) {
	fs := flag.NewFlagSet("seed-admin", flag.ContinueOnError)
	in := &seedInput{}
	fs.StringVar(&in.Username, "username", "admin", "admin username")
	fs.StringVar(&in.Password, "password", "admin123", "admin password")
	fs.StringVar(&in.StudentID, "student-id", "ADMIN001", "allow-list entry backing the admin account")
	fs.StringVar(&in.Name, "name", "Administrator", "allow-list entry display name")
	fs.StringVar(&in.Email, "email", "admin@campus-portal.local", "admin email")
	fs.StringVar(&in.Phone, "phone", "13900000000", "admin phone")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return in, nil
}

func seed(ctx context.Context, db *gorm.DB, in *seedInput) error {
	userRepo := infrarepos.NewUserRepository(db)
	studentRepo := infrarepos.NewStudentRepository(db)
	uow := infrarepos.NewUnitOfWork(db)

	if _, err := userRepo.GetByUsername(ctx, in.Username); err == nil {
		log.Printf("admin user %q already exists, nothing to do", in.Username)
		return nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return err
	}

	return uow.Do(ctx, func(txCtx context.Context) error {
		_, err := studentRepo.GetByStudentID(txCtx, in.StudentID)
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			if err := studentRepo.Create(txCtx, &entities.Student{
				StudentID: in.StudentID,
				Name:      in.Name,
				IsUsed:    true,
			}); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := studentRepo.SetUsed(txCtx, in.StudentID, true); err != nil {
				return err
			}
		}

		return userRepo.Create(txCtx, &entities.User{
			Username:     in.Username,
			Email:        in.Email,
			Phone:        in.Phone,
			StudentID:    in.StudentID,
			PasswordHash: passwordHash,
		})
	})
}

func runSeed(args []string) error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	in, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := loadCfg()
	db, err := openSeedDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&models.User{}, &models.Student{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := seed(context.Background(), db, in); err != nil {
		return err
	}

	log.Printf("admin account %q is ready (student id %s)", in.Username, in.StudentID)
	return nil
}

func main() {
	if err := runSeed(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
