package middleware

import (
	"net/http"

	"agrimart-be/internal/auth"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticate attaches the caller identity when a valid access token is present.
// Requests without a token pass through anonymously; a token that fails to parse is rejected.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			logger.FromCtx(c.Request.Context()).Debug("rejected access token", zap.Error(err))
			abort(c, http.StatusUnauthorized, "Not Authorized. Login Again")
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		ctx = logger.WithUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			abort(c, http.StatusUnauthorized, "Not Authorized. Login Again")
			return
		}
		c.Next()
	}
}

// RequireSeller must run after RequireAuth.
func RequireSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsSeller(c.Request.Context()) {
			abort(c, http.StatusForbidden, "seller access required")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
