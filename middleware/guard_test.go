package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixingbowl/tokenauth/jwt"
)

func newTestService(t *testing.T) *jwt.Service {
	t.Helper()
	svc, err := jwt.NewService(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Expiration: time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func subjectEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		if !ok {
			t.Error("subject missing from context")
		}
		_, _ = w.Write([]byte(subject))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "Bearer   abc  ", token: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestRequireSubject(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	handler := RequireSubject(svc)(subjectEcho(t))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user@example.com", rec.Body.String())
	})

	rejected := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"garbage token":  "Bearer not-a-token",
		"tampered token": "Bearer " + token + "x",
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized\n", rec.Body.String())
		})
	}
}

func TestRequireSubjectNilParser(t *testing.T) {
	handler := RequireSubject(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireValid(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	called := 0
	handler := RequireValid(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		_, ok := SubjectFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Authorization", "Bearer expired.or.forged")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, 1, called)
}

func TestGinRequireSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	token, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", GinRequireSubject(svc), func(c *gin.Context) {
		fromCtx, ok := SubjectFromContext(c.Request.Context())
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(GinSubjectKey), "ctx": fromCtx})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subject":"user@example.com","ctx":"user@example.com"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}
