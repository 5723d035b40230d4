package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbot/utils"
)

// JWTAuthAdminMiddleware admits requests carrying an HS256 token signed with
// secret whose "role" claim is admin.
func JWTAuthAdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Missing or invalid Authorization header",
			})
			return
		}

		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			zap.L().Debug("admin token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid token",
			})
			return
		}

		if role, _ := claims["role"].(string); role != utils.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Unauthorized admin access",
			})
			return
		}

		sub, _ := claims["sub"].(string)
		c.Set("adminID", sub)
		c.Set("isAdmin", true)
		c.Next()
	}
}
