// Package config reads passwd settings from the environment and an optional
// .env file in the working directory.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"passwd/internal/domain"
	"passwd/internal/kdf"
)

// BuildSalt is the installation salt compiled into the binary:
//
//	go build -ldflags "-X passwd/internal/config.BuildSalt=$(passwd salt -q)" ./cmd/passwd
//
// PASSWD_SALT takes precedence when set.
var BuildSalt = kdf.PlaceholderSalt

// ErrParsingConfig is returned when environment variables cannot be parsed.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config holds every tunable of a derivation run.
type Config struct {
	Salt            string `env:"PASSWD_SALT"`
	Length          int    `env:"PASSWD_LENGTH" envDefault:"12"`
	KDF             string `env:"PASSWD_KDF" envDefault:"pbkdf2"`
	Iterations      int    `env:"PASSWD_ITERATIONS" envDefault:"10000"`
	Argon2Time      uint32 `env:"PASSWD_ARGON2_TIME" envDefault:"1"`
	Argon2MemoryKiB uint32 `env:"PASSWD_ARGON2_MEMORY_KIB" envDefault:"65536"`
	Argon2Threads   uint8  `env:"PASSWD_ARGON2_THREADS" envDefault:"4"`
	MaxAttempts     int    `env:"PASSWD_MAX_ATTEMPTS" envDefault:"10000"`
	Normalize       bool   `env:"PASSWD_NORMALIZE" envDefault:"false"`
	NoClipboard     bool   `env:"PASSWD_NO_CLIPBOARD" envDefault:"false"`
	LogLevel        string `env:"PASSWD_LOG_LEVEL" envDefault:"warn"`
	LogFormat       string `env:"PASSWD_LOG_FORMAT" envDefault:"text"`
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()
	return LoadEnv(nil)
}

// LoadEnv parses cfg from the given variables instead of the process
// environment when vars is non-nil.
func LoadEnv(vars map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if vars != nil {
		opts.Environment = vars
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.Salt == "" {
		cfg.Salt = BuildSalt
	}
	return cfg, nil
}

// KDFOptions returns the backend work factors.
func (c Config) KDFOptions() kdf.Options {
	return kdf.Options{
		Iterations: c.Iterations,
		Argon2: kdf.Argon2Params{
			Time:      c.Argon2Time,
			MemoryKiB: c.Argon2MemoryKiB,
			Threads:   c.Argon2Threads,
		},
	}
}

// Validate reports settings that would make every derivation fail.
func (c Config) Validate() error {
	if err := kdf.CheckSalt([]byte(c.Salt)); err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", domain.ErrConfiguration, c.Iterations)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", domain.ErrConfiguration, c.MaxAttempts)
	}
	return nil
}
