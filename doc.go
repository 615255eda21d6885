// Package tokenauth wires configuration and logging into a jwt.Service that
// issues and verifies subject tokens for a single shared secret.
//
// The package is the construction surface: [LoadConfig] reads the secret and
// expiration from the environment, and [Builder] turns a [Config] into a
// ready *jwt.Service. Token semantics live in the jwt sub-package.
//
// # Architecture boundaries
//
// tokenauth owns configuration sources and startup validation. It does NOT
// sign, parse, or store tokens itself, and it never logs the secret.
//
// # What this package must NOT do
//
//   - Fall back to a default or generated secret when none is configured.
//   - Hand out a service built from a configuration that failed validation.
package tokenauth
