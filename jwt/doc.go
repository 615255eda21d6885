// Package jwt issues and verifies HS256 access tokens that carry a single
// subject (the principal's email) together with issued-at and expiry claims.
//
// # Operations
//
//   - [Service.Issue] signs a new token for a subject.
//   - [Service.ParseSubject] verifies a token and returns its subject, or an
//     [*InvalidTokenError].
//   - [Service.Verify] verifies a token and reports the outcome as a bool.
//
// # Architecture boundaries
//
// The package owns the wire format (RFC 7515 compact JWS, RFC 7519 claims)
// and the signing key derived from the configured secret. It does NOT load
// configuration, store tokens, or track revocation.
//
// # What this package must NOT do
//
//   - Sign with a secret shorter than 32 bytes.
//   - Accept any algorithm other than HS256.
//   - Tell callers whether a token was expired, forged, or malformed; every
//     rejection is reported as [ErrInvalidToken]. The cause is only logged.
package jwt
