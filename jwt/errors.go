package jwt

import "errors"

var (
	// ErrConfiguration matches every [*ConfigurationError].
	ErrConfiguration = errors.New("invalid token configuration")
	// ErrInvalidToken matches every [*InvalidTokenError].
	ErrInvalidToken = errors.New("invalid token")

	errEmptyToken      = errors.New("empty token")
	errUnexpectedClaim = errors.New("unexpected claims type")
)

// ConfigurationError reports a secret or expiration that cannot be used to
// sign tokens. Callers should treat it as fatal at startup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return ErrConfiguration.Error() + ": " + e.Reason
}

// Is makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// InvalidTokenError is returned for any token that fails verification or
// decoding. Its message is always "invalid token"; Cause is kept for
// diagnostics and must not be used to tell expiry apart from forgery.
type InvalidTokenError struct {
	Cause error
}

func (e *InvalidTokenError) Error() string {
	return ErrInvalidToken.Error()
}

func (e *InvalidTokenError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrInvalidToken) hold.
func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}
