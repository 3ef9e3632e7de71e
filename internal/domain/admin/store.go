package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Administrator, error) {
	var a Administrator
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, mail_address, password
    FROM administrators
    WHERE mail_address = $1
  `, email).Scan(&a.ID, &a.Name, &a.MailAddress, &a.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) Insert(ctx context.Context, a Administrator) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO administrators (name, mail_address, password)
    VALUES ($1, $2, $3)
  `, a.Name, a.MailAddress, a.Password)
	return err
}
