package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Geeky-har/My-Blog/config"
	"github.com/Geeky-har/My-Blog/utils"
)

const (
	// SessionCookieName is the cookie carrying the signed admin session.
	SessionCookieName = "session"
	// ContextAdminKey stores the authenticated admin username in Gin context.
	ContextAdminKey = "admin"
)

// CurrentAdmin returns the authenticated admin username for the request, or
// false when the caller is anonymous. A session is valid only when the cookie
// parses, has not been revoked, and names the configured admin.
func CurrentAdmin(ctx *gin.Context, cfg config.AppConfig) (string, bool) {
	token, err := ctx.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return "", false
	}

	if utils.IsSessionRevoked(token) {
		return "", false
	}

	claims, err := utils.ParseSessionToken(cfg.SessionSecret, token)
	if err != nil {
		return "", false
	}

	if claims.Username != cfg.AdminUsername {
		return "", false
	}

	return claims.Username, true
}

// AdminRequired gates mutating dashboard routes. Anonymous callers are
// redirected to the login page instead of falling through with no response.
func AdminRequired(cfg config.AppConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		admin, ok := CurrentAdmin(ctx, cfg)
		if !ok {
			ctx.Redirect(http.StatusSeeOther, "/dashboard")
			ctx.Abort()
			return
		}

		ctx.Set(ContextAdminKey, admin)
		ctx.Next()
	}
}
