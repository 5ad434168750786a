package store

import (
	"context"
	"time"

	"github.com/erazemk/shutils/internal/model"
)

const accountID = 1

// CreateAccount stores the owner account. Only one account can exist.
func (s *Store) CreateAccount(ctx context.Context, username, passwordHash string) (*model.Account, error) {
	a := &model.Account{
		ID:           accountID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(a).Exec(ctx); err != nil {
		return nil, wrap("creating account", err)
	}
	return s.Account(ctx)
}

// Account returns the owner account, or ErrNotFound before initialisation.
func (s *Store) Account(ctx context.Context) (*model.Account, error) {
	a := new(model.Account)
	if err := s.db.NewSelect().Model(a).Where("a.id = ?", accountID).Scan(ctx); err != nil {
		return nil, wrap("getting account", err)
	}
	return a, nil
}

// HasAccount reports whether the owner account was created.
func (s *Store) HasAccount(ctx context.Context) (bool, error) {
	exists, err := s.db.NewSelect().Model((*model.Account)(nil)).Exists(ctx)
	if err != nil {
		return false, wrap("checking account", err)
	}
	return exists, nil
}

// UpdateAccountPassword replaces the owner's password hash.
func (s *Store) UpdateAccountPassword(ctx context.Context, passwordHash string) error {
	res, err := s.db.NewUpdate().
		Model((*model.Account)(nil)).
		Set("password_hash = ?", passwordHash).
		Where("id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return wrap("updating account password", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("account", accountID)
	}
	return nil
}
