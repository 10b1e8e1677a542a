// safemap/internal/middleware/session_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waseok/safemap/internal/auth"
)

const (
	ctxStudentID = "student_id"
	ctxClassID   = "class_id"
)

// SessionMiddleware guards mutating student endpoints. It validates the
// bearer session token and injects the student and class identity into
// the request context; handlers must use these instead of any IDs the
// client put in the body.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "session token not provided")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid Authorization header format")
			return
		}

		claims, err := auth.ParseSessionToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired session token")
			return
		}

		// Subject and class_id were uuid-checked during parsing.
		studentID, _ := uuid.Parse(claims.Subject)
		classID, _ := uuid.Parse(claims.ClassID)
		c.Set(ctxStudentID, studentID)
		c.Set(ctxClassID, classID)
		c.Next()
	}
}

// SessionStudent returns the identity injected by SessionMiddleware.
func SessionStudent(c *gin.Context) (studentID, classID uuid.UUID, ok bool) {
	sv, exists := c.Get(ctxStudentID)
	if !exists {
		return uuid.Nil, uuid.Nil, false
	}
	cv, exists := c.Get(ctxClassID)
	if !exists {
		return uuid.Nil, uuid.Nil, false
	}
	studentID, sOK := sv.(uuid.UUID)
	classID, cOK := cv.(uuid.UUID)
	return studentID, classID, sOK && cOK
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
