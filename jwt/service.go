package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest secret accepted for HS256 (256 bits).
const MinSecretLength = 32

// Config carries the values a [Service] is built from. The service copies
// what it needs; later changes to Config have no effect on it.
type Config struct {
	// Secret is the shared HMAC key material. At least MinSecretLength bytes.
	Secret []byte
	// Expiration is added to the issue time to form the exp claim.
	Expiration time.Duration
	// Logger receives diagnostics. Nil discards them.
	Logger Logger
	// Now overrides the clock used for issuing and for expiry checks.
	Now func() time.Time
}

// Service issues and verifies subject tokens. It holds only immutable
// configuration and is safe for concurrent use.
type Service struct {
	key        []byte
	expiration time.Duration
	logger     Logger
	now        func() time.Time
	parser     *jwt.Parser
}

// NewService validates cfg and returns a ready Service. A secret shorter
// than MinSecretLength or a non-positive expiration yields a
// [*ConfigurationError].
func NewService(cfg Config) (*Service, error) {
	key, err := deriveSigningKey(cfg.Secret)
	if err != nil {
		return nil, err
	}
	if cfg.Expiration <= 0 {
		return nil, &ConfigurationError{Reason: "expiration must be positive"}
	}

	s := &Service{
		key:        key,
		expiration: cfg.Expiration,
		logger:     cfg.Logger,
		now:        cfg.Now,
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// Issue returns a signed token whose sub is subject, iat is now and exp is
// now plus the configured expiration. The subject is not validated.
func (s *Service) Issue(subject string) (string, error) {
	s.logger.Infof("issuing token for subject: %s", subject)

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseSubject verifies token and returns the subject it was issued for.
// Any failure, including expiry, is returned as [*InvalidTokenError].
func (s *Service) ParseSubject(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		s.logger.Errorf("error extracting subject from token: %v", err)
		return "", &InvalidTokenError{Cause: err}
	}

	s.logger.Infof("extracted subject from token: %s", claims.Subject)
	return claims.Subject, nil
}

// Verify reports whether token carries a valid HS256 signature for the
// configured secret and has not expired. A token without exp never expires.
// It never returns an error.
func (s *Service) Verify(token string) bool {
	if _, err := s.parse(token); err != nil {
		s.logger.Errorf("token validation failed: %v", err)
		return false
	}
	return true
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, errEmptyToken
	}

	parsed, err := s.parser.ParseWithClaims(token, &jwt.RegisteredClaims{}, s.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, errUnexpectedClaim
	}
	return claims, nil
}

func (s *Service) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing algorithm: %v", t.Header["alg"])
	}
	return s.key, nil
}

// deriveSigningKey is the only place secret bytes become an HMAC key. The
// returned slice is a private copy.
func deriveSigningKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, &ConfigurationError{Reason: "secret is empty"}
	}
	if len(secret) < MinSecretLength {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("secret is %d bits, HS256 requires at least %d", len(secret)*8, MinSecretLength*8),
		}
	}

	key := make([]byte, len(secret))
	copy(key, secret)
	return key, nil
}

// IsConfigurationError reports whether err was caused by an unusable secret
// or expiration.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
