package middleware

import (
	"jornada40/internal/auth/token"
	"jornada40/internal/shared/apperror"
	"jornada40/internal/shared/contextutil"
	"jornada40/internal/shared/response"
	"strings"

	autherrors "jornada40/internal/auth/errors"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

// AuthMiddleware accepts a Bearer header or the access_token cookie and puts
// the caller's id under "user_id".
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := tokens.Parse(tokenString, token.KindAccess)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Request = c.Request.WithContext(contextutil.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
}
