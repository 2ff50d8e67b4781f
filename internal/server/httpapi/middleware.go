package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plannly/guestsync/internal/auth"
	"github.com/plannly/guestsync/internal/common"
)

const accountIDKey = "account_id"

// TokenMiddleware verifies the service token and stores the calling
// account id in the request context.
func TokenMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.AccessTokenHeaderName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "error": "missing access token",
			})
			return
		}

		accountID, err := auth.AccountIDFromToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "error": "invalid access token",
			})
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}
