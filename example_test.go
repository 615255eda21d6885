package tokenauth_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixingbowl/tokenauth"
	"github.com/mixingbowl/tokenauth/jwt"
	"github.com/mixingbowl/tokenauth/logger"
	"github.com/mixingbowl/tokenauth/metrics"
	"github.com/mixingbowl/tokenauth/middleware"
)

// ExampleNew shows the issue / parse / verify cycle.
func ExampleNew() {
	svc, err := tokenauth.New().
		WithConfig(tokenauth.Config{
			Secret:           "0123456789abcdef0123456789abcdef",
			ExpirationMillis: 60_000,
		}).
		Build()
	if err != nil {
		fmt.Println("config:", err)
		return
	}

	token, _ := svc.Issue("user@example.com")
	subject, _ := svc.ParseSubject(token)
	fmt.Println(subject)
	fmt.Println(svc.Verify(token))

	_, err = svc.ParseSubject("forged")
	fmt.Println(err, errors.Is(err, jwt.ErrInvalidToken))
	// Output:
	// user@example.com
	// true
	// invalid token true
}

// ExampleConfig_Validate shows how a short secret is reported.
func ExampleConfig_Validate() {
	err := tokenauth.Config{Secret: "too-short", Expiration: time.Hour}.Validate()
	fmt.Println(errors.Is(err, jwt.ErrConfiguration))
	// Output:
	// true
}

func TestEndToEnd(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc, err := tokenauth.New().
		WithConfig(tokenauth.Config{Secret: "0123456789abcdef0123456789abcdef", ExpirationMillis: 1000}).
		WithLogger(logger.Nop()).
		WithClock(func() time.Time { return now }).
		Build()
	require.NoError(t, err)

	instrumented, err := metrics.Instrument(svc, prometheus.NewRegistry())
	require.NoError(t, err)

	handler := middleware.RequireSubject(instrumented)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := middleware.SubjectFromContext(r.Context())
		_, _ = w.Write([]byte(subject))
	}))

	token, err := instrumented.Issue("user@example.com")
	require.NoError(t, err)

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	rec := call()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user@example.com", rec.Body.String())

	now = now.Add(1100 * time.Millisecond)

	rec = call()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, instrumented.Verify(token))
}
