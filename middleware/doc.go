// Package middleware exposes HTTP guards for net/http and gin built on a
// token service.
//
// # Guards
//
//   - [RequireSubject]: verifies the bearer token with ParseSubject and
//     injects the subject into the request context.
//   - [RequireValid]: guard clause on Verify only; nothing is injected.
//   - [GinRequireSubject]: gin equivalent of RequireSubject.
//
// Every rejection is a plain 401 "unauthorized". The guards never reveal
// whether a token was missing, expired, or forged.
//
// # What this package must NOT do
//
//   - Parse or sign tokens directly (delegates to the service).
//   - Log token contents.
package middleware
