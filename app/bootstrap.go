package app

import (
	"asset-inventory-backend/db"
	"asset-inventory-backend/models"
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin creates the initial admin account from env vars when
// the user table is empty. Further accounts are created by that admin over
// the API.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapAdminUsername == "" || cfg.BootstrapAdminPassword == "" {
		return
	}

	n, err := repo.CountUsers(ctx)
	if err != nil {
		log.Printf("bootstrap admin check failed: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap admin hash failed: %v", err)
		return
	}

	u, err := repo.CreateUser(ctx, uuid.NewString(), db.CreateUserInput{
		Username:     cfg.BootstrapAdminUsername,
		Email:        cfg.BootstrapAdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		log.Printf("bootstrap admin create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] Created first admin user %s", u.Username)
}
