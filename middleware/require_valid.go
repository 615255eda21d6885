package middleware

import "net/http"

// RequireValid returns middleware that only checks Verify on the bearer
// token. Use it for routes that need a valid token but not its subject.
func RequireValid(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || verifier == nil || !verifier.Verify(token) {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
