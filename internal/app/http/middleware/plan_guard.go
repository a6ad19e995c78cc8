package middleware

import (
	"net/http"

	"ecomcopy-app/database"
	"ecomcopy-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequirePlan gates a route to accounts on one of the named plans, e.g.
// the premium-only email generator.
func RequirePlan(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		var user users.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		for _, plan := range allowed {
			if user.Plan == plan {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Your plan does not include this feature. Upgrade to continue.",
		})
	}
}
