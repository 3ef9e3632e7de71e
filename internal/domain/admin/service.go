package admin

import (
	"context"
	"errors"
	"fmt"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// Login checks the credentials against the stored bcrypt hash. Unknown email
// and wrong password both come back as ErrInvalidCredentials so the response
// does not reveal which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (*Administrator, error) {
	a, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("administrator lookup: %w", err)
	}
	if err := CheckPassword(a.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Register creates a new administrator with a hashed password, rejecting an
// already-registered mail address.
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("administrator lookup: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Insert(ctx, Administrator{Name: name, MailAddress: email, Password: hash})
}
