package tokenauth

import (
	"errors"
	"time"

	"github.com/mixingbowl/tokenauth/jwt"
)

// Builder assembles a *jwt.Service. A Builder is single-use.
type Builder struct {
	config Config
	logger jwt.Logger
	now    func() time.Time

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithLogger sets the diagnostic sink passed to the service.
func (b *Builder) WithLogger(l jwt.Logger) *Builder {
	b.logger = l
	return b
}

// WithClock overrides the service clock. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration and returns the service. Configuration
// problems satisfy errors.Is(err, jwt.ErrConfiguration).
func (b *Builder) Build() (*jwt.Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	svc, err := jwt.NewService(jwt.Config{
		Secret:     []byte(b.config.Secret),
		Expiration: b.config.TokenLifetime(),
		Logger:     b.logger,
		Now:        b.now,
	})
	if err != nil {
		return nil, err
	}

	b.built = true
	return svc, nil
}
