package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/erazemk/shutils/internal/metrics"
)

// Setting keys.
const (
	settingJWTSecret = "jwt_secret"
)

type setting struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

// JWTSecret returns the token signing secret, generating and storing one on
// first use. The insert is ignored when a secret already exists and the
// stored value is always read back.
func (s *Store) JWTSecret(ctx context.Context) (secret string, err error) {
	defer metrics.ObserveStore("jwt_secret", time.Now(), &err)

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	candidate := &setting{Key: settingJWTSecret, Value: hex.EncodeToString(buf)}
	if _, err := s.db.NewInsert().Model(candidate).Ignore().Exec(ctx); err != nil {
		return "", wrap("storing jwt secret", err)
	}

	value, err := s.Setting(ctx, settingJWTSecret)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Setting returns the value stored under key.
func (s *Store) Setting(ctx context.Context, key string) (string, error) {
	st := new(setting)
	if err := s.db.NewSelect().Model(st).Where("st.key = ?", key).Scan(ctx); err != nil {
		return "", wrap(fmt.Sprintf("reading setting %s", key), err)
	}
	return st.Value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.NewInsert().
		Model(&setting{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return wrap(fmt.Sprintf("writing setting %s", key), err)
}
