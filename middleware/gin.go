package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinSubjectKey is the gin context key GinRequireSubject stores the subject
// under.
const GinSubjectKey = "subject"

// GinRequireSubject is the gin counterpart of RequireSubject. The subject is
// available through c.GetString(GinSubjectKey) and SubjectFromContext on
// c.Request.Context().
func GinRequireSubject(parser SubjectParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil {
			abortUnauthorized(c)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		subject, err := parser.ParseSubject(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(GinSubjectKey, subject)
		c.Request = c.Request.WithContext(WithSubject(c.Request.Context(), subject))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
