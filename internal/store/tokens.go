package store

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type revokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rt"`

	JTI       string    `bun:"jti,pk"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
}

// RevokeToken adds a token's JTI to the revocation list.
func (s *Store) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.db.NewInsert().
		Model(&revokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()}).
		Ignore().
		Exec(ctx)
	if err != nil {
		return wrap("revoking token", err)
	}

	// Opportunistically clean up expired revocations.
	_, _ = s.db.NewDelete().
		Model((*revokedToken)(nil)).
		Where("expires_at < ?", time.Now().UTC()).
		Exec(ctx)

	return nil
}

// IsTokenRevoked checks if a token's JTI has been revoked.
func (s *Store) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*revokedToken)(nil)).
		Where("rt.jti = ?", jti).
		Exists(ctx)
	if err != nil {
		return false, wrap("checking token revocation", err)
	}
	return exists, nil
}
