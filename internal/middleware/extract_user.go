package middleware

import (
	"net/http"

	"go-volunteer/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidUserID = apperror.New("INVALID_USER_ID", "Session user id is not a valid id", http.StatusUnauthorized)

// ExtractUserID requires the authenticated user id to be a UUID before any
// attendance write is attempted, and exposes it as user_id_validated.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}
		if _, err := uuid.Parse(userID); err != nil {
			abortWith(c, ErrInvalidUserID)
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}
