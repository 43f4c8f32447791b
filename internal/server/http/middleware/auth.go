package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/kashieternal/rewardsgate/internal/domain/errors"
	"github.com/kashieternal/rewardsgate/internal/domain/model"
	pkgAuth "github.com/kashieternal/rewardsgate/internal/pkg/auth"
)

const (
	// SessionContextKey is a gin context key for the resolved session.
	SessionContextKey = "session"
	authCookieName    = "ker_token"
)

// SessionResolver exchanges a signed cookie token for the live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*model.Session, error)
}

// MemberRequired ensures a member session before accessing handler.
func MemberRequired(resolver SessionResolver) gin.HandlerFunc {
	return authRequired(resolver, model.SessionMember)
}

// AdminRequired ensures an admin session before accessing handler.
func AdminRequired(resolver SessionResolver) gin.HandlerFunc {
	return authRequired(resolver, model.SessionAdmin)
}

func authRequired(resolver SessionResolver, kind model.SessionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		session, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) || errors.Is(err, domainErrors.ErrNotAuthenticated) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if session.Kind != kind {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// ExtractToken pulls the signed session token from header or cookie.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the session token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ClearAuthCookie expires the session token cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(authCookieName, "", -1, "/", "", false, true)
}
