package tokenauth

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mixingbowl/tokenauth/jwt"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into a Config.
	ErrParsingConfig = errors.New("failed to parse token configuration from environment")
	// ErrLoadingEnvFile is returned when an explicitly named .env file cannot
	// be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")
)

// Config holds the process-wide token settings.
type Config struct {
	// Secret is the HMAC secret. It is removed from the environment once read.
	Secret string `env:"JWT_SECRET,required,unset"`
	// Expiration is the token lifetime.
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	// ExpirationMillis, when positive, overrides Expiration.
	ExpirationMillis int64 `env:"JWT_EXPIRATION_MS"`
}

// DefaultConfig returns a Config with every field except Secret set.
func DefaultConfig() Config {
	return Config{Expiration: 24 * time.Hour}
}

// TokenLifetime returns the effective expiration duration.
func (c Config) TokenLifetime() time.Duration {
	if c.ExpirationMillis > 0 {
		return time.Duration(c.ExpirationMillis) * time.Millisecond
	}
	return c.Expiration
}

// Validate reports configuration problems as jwt configuration errors.
func (c Config) Validate() error {
	if c.Secret == "" {
		return &jwt.ConfigurationError{Reason: "secret is empty"}
	}
	if len(c.Secret) < jwt.MinSecretLength {
		return &jwt.ConfigurationError{
			Reason: fmt.Sprintf("secret is %d bits, HS256 requires at least %d", len(c.Secret)*8, jwt.MinSecretLength*8),
		}
	}
	if c.ExpirationMillis < 0 {
		return &jwt.ConfigurationError{Reason: "expiration millis must not be negative"}
	}
	if c.TokenLifetime() <= 0 {
		return &jwt.ConfigurationError{Reason: "expiration must be positive"}
	}
	return nil
}

// LoadConfig reads files (or ./.env when none are given and it exists) into
// the process environment and parses a Config from it. Variables already set
// in the environment take precedence over file values.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		// ./.env is optional, but one that exists must load.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadingEnvFile, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, errors.Join(ErrLoadingEnvFile, err)
	}

	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
