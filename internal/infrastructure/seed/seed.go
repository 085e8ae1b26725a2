// Package seed bootstraps the initial admin account on auth service startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

// EnsureAdmin creates the bootstrap admin user when it does not exist yet.
// A no-op when email or password is empty, and when the account is already
// present — safe to run on every startup.
func EnsureAdmin(ctx context.Context, repo ports.UserRepository, email, password string, log zerolog.Logger) error {
	if email == "" || password == "" {
		log.Debug().Msg("admin seeding skipped, no credentials configured")
		return nil
	}

	_, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    "System",
		LastName:     "Admin",
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleAdmin, domain.RoleEmployee},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		// Concurrent replicas may race on first boot; the account existing
		// is the desired outcome either way.
		if errors.Is(err, domain.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("email", email).Msg("admin account seeded")
	return nil
}
