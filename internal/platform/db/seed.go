package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"empman/internal/domain/admin"
	"empman/internal/platform/config"
)

// Seed ensures the configured administrator account exists so the login
// endpoint is usable on a fresh database. Passwords are bcrypt-hashed before
// they touch the table.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM administrators WHERE mail_address = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := admin.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO administrators (name, mail_address, password)
    VALUES ($1, $2, $3)
  `, cfg.SeedAdminName, email, hash)
	return err
}
