package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shutils/internal/db"
	"github.com/erazemk/shutils/internal/store"
)

const (
	defaultUser    = "trainer"
	passwordLength = 16
)

var errInitialized = errors.New("database already has an account")

func (a *app) initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "create the database and the owner account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Value: defaultUser, Usage: "account name"},
		},
		Action: func(c *cli.Context) error {
			s, err := a.openStore(c.Context)
			if err != nil {
				return err
			}
			defer s.Close()

			exists, err := s.HasAccount(c.Context)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%s: %w", a.cfg.Database.Path, errInitialized)
			}

			password, err := createAccount(c.Context, s, c.String("user"))
			if err != nil {
				return err
			}
			printInitResult(a.stdout, a.cfg.Database.Path, c.String("user"), password)
			return nil
		},
	}
}

func (a *app) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending schema migrations",
		Action: func(c *cli.Context) error {
			sqldb, err := db.Open(a.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer sqldb.Close()

			if err := db.Migrate(c.Context, sqldb); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
			v, err := db.Version(c.Context, sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Schema version: %d\n", v)
			return nil
		},
	}
}

// createAccount generates a password and stores the owner account.
func createAccount(ctx context.Context, s *store.Store, username string) (string, error) {
	password, err := generatePassword(passwordLength)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if _, err := s.CreateAccount(ctx, username, string(hash)); err != nil {
		return "", fmt.Errorf("creating account: %w", err)
	}
	return password, nil
}

// printInitResult prints the account credentials after initialisation.
func printInitResult(w io.Writer, dbPath, username, password string) {
	fmt.Fprintf(w, "Database: %s\n", dbPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account created:")
	fmt.Fprintf(w, "  Username: %s\n", username)
	fmt.Fprintf(w, "  Password: %s\n", password)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Save this password, it cannot be recovered.")
	fmt.Fprintln(w, "It can be changed after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
