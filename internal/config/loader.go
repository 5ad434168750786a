package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/erazemk/shutils/internal/db"
)

// DefaultFile is the config file read when no path is given and it exists.
const DefaultFile = "./shutils.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path, else SHUTILS_CONFIG, else DefaultFile. A missing file is
// an error only when it was named explicitly. Variables from a .env file in
// the working directory are loaded first without overriding the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config

	if path == "" {
		path = os.Getenv("SHUTILS_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultFile
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.Database.Path == "" {
		p, err := db.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.Database.Path = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
