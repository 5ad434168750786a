package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/shutils/internal/db"
	"github.com/erazemk/shutils/internal/model"
)

func TestCreateAndGetAccount(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	has, err := s.HasAccount(ctx)
	if err != nil {
		t.Fatalf("HasAccount: %v", err)
	}
	if has {
		t.Fatal("expected no account in a fresh database")
	}

	a, err := s.CreateAccount(ctx, "ash", "hash123")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if a.Username != "ash" {
		t.Errorf("expected username 'ash', got %q", a.Username)
	}

	if _, err := s.CreateAccount(ctx, "gary", "hash"); err == nil {
		t.Error("expected second account to be rejected")
	}

	got, err := s.Account(ctx)
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if got.PasswordHash != "hash123" {
		t.Errorf("expected stored hash, got %q", got.PasswordHash)
	}
}

func TestAccountMissing(t *testing.T) {
	s := New(db.NewTestDB(t))

	_, err := s.Account(context.Background())
	if !errorsIsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateAccountPassword(t *testing.T) {
	s := New(db.NewTestDB(t))
	ctx := context.Background()

	if err := s.UpdateAccountPassword(ctx, "x"); !errorsIsNotFound(err) {
		t.Errorf("expected not found before init, got %v", err)
	}

	if _, err := s.CreateAccount(ctx, "ash", "old"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := s.UpdateAccountPassword(ctx, "new"); err != nil {
		t.Fatalf("UpdateAccountPassword: %v", err)
	}

	a, _ := s.Account(ctx)
	if a.PasswordHash != "new" {
		t.Errorf("expected updated hash, got %q", a.PasswordHash)
	}
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
