package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fotolab/internal/config"
	"fotolab/internal/db"
	"fotolab/internal/model"
	"fotolab/internal/repository"
)

func newSeedCommand() *cobra.Command {
	var (
		username string
		password string
		reset    bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Migrate the schema and seed roles and an admin account",
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if reset {
				cfg.ResetDB = true
			}

			gormDB, err := db.Open(cfg, logger.Warn)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			log.Println("Connected to database")

			created, err := seed(cmd.Context(), gormDB, cfg, username, password)
			if err != nil {
				return err
			}
			if created {
				log.Printf("Admin user %q created", username)
			} else {
				log.Printf("Admin user %q already exists, skipped", username)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "admin-username", "admin", "username of the admin account")
	cmd.Flags().StringVar(&password, "admin-password", "", "password of the admin account")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before migrating")
	_ = cmd.MarkFlagRequired("admin-password")

	return cmd
}

// seed migrates the schema and creates the admin account unless a user with
// that name exists. It reports whether the account was created.
func seed(ctx context.Context, gormDB *gorm.DB, cfg *config.Config, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, errors.New("admin username and password are required")
	}

	if cfg.ResetDB {
		log.Println("Dropping all tables...")
		if err := db.Reset(ctx, gormDB); err != nil {
			return false, err
		}
	}
	if err := db.Migrate(ctx, gormDB); err != nil {
		return false, err
	}
	log.Println("Database migrations completed")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	created := false
	users := repository.NewUserRepository(gormDB)
	err = users.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		if _, err := tx.FindByUsername(ctx, username); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role, err := tx.FindRoleByName(ctx, model.RoleAdmin)
		if err != nil {
			return fmt.Errorf("find admin role: %w", err)
		}
		if err := tx.Create(ctx, &model.User{
			Username:     username,
			PasswordHash: string(hash),
			RoleID:       role.ID,
		}); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
