package middleware

import (
	"net/http"
	"strings"

	"plannerly/utils"

	"github.com/gin-gonic/gin"
)

// PlanAuthMiddleware guards plan session routes. The session JWT issued at
// plan creation must carry the same plan ID as the :id route parameter.
func PlanAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		planID, err := utils.ExtractPlanIDFromToken(tokenString)
		if err != nil || planID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		if routeID := c.Param("id"); routeID != "" && routeID != planID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Token does not grant access to this plan",
				"code":  1,
			})
			return
		}

		c.Set("planID", planID)
		c.Next()
	}
}
