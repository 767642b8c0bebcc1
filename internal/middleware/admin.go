package middleware

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Role-Based Middleware ---
//
// Designed to run *after* AuthMiddleware: reads the 'userID' from the
// context, queries the user's role, and enforces it.
//

// AdminMiddleware gates the moderation back office.
func AdminMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDRaw, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		userID := userIDRaw.(int64)

		var role string
		err := db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
		if err != nil {
			if err == sql.ErrNoRows {
				// Generic error to avoid exposing user existence
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking role"})
			}
			c.Abort()
			return
		}

		if role != "administrator" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Administrator role required"})
			c.Abort()
			return
		}

		c.Set("userRole", role)
		c.Next()
	}
}
