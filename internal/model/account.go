package model

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// MinPasswordLength is the shortest password accepted for the owner account.
const MinPasswordLength = 8

// Account is the single owner login of a tracker instance.
type Account struct {
	bun.BaseModel `bun:"table:account,alias:a" json:"-"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull" json:"username"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ValidatePassword checks a new password against the length policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}
