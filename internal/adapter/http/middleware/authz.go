package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/misbahulhassan/Aeroflux-Electric/configs"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

const (
	ctxUserID    = "auth.user_id"
	ctxUserEmail = "auth.email"
)

type Authz struct {
	cfg configs.Config
}

func NewAuthz(cfg configs.Config) *Authz {
	return &Authz{cfg: cfg}
}

// Authenticate resolves the Bearer session token if present and stores the
// user identity in the request context. Anonymous requests pass through;
// handlers that need an identity combine this with RequireUser.
func (a *Authz) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.Next()
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.Security.JWTSecret), nil
		}, jwt.WithLeeway(30*time.Second)) // small clock skew

		if err != nil || !token.Valid {
			unauth(c, "invalid_token", "invalid jwt")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauth(c, "invalid_token", "claims parsing error")
			return
		}

		if claims["iss"] != a.cfg.Security.Issuer || claims["aud"] != a.cfg.Security.Audience {
			unauth(c, "invalid_token", "iss/aud mismatch")
			return
		}

		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set(ctxUserID, sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ctxUserEmail, email)
		}
		c.Next()
	}
}

// RequireUser rejects requests without an authenticated user.
// Must run after Authenticate.
func (a *Authz) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			unauth(c, "invalid_request", "missing bearer token")
			return
		}
		c.Next()
	}
}

// RequireAdmin grants access only to users with an admin_users membership
// row. The check runs per request so a revoked admin loses access as soon
// as their current request finishes.
func (a *Authz) RequireAdmin(admins usecase.AdminRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := UserID(c)
		if uid == "" {
			unauth(c, "invalid_request", "missing bearer token")
			return
		}
		ok, err := admins.IsAdmin(c.Request.Context(), uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "admin_check_failed"})
			return
		}
		if !ok {
			forbidden(c, "insufficient_scope", "admin privileges required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// UserEmail returns the authenticated user's email, or "".
func UserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmail)
}

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code, "error_description": desc})
}

func forbidden(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": code, "error_description": desc})
}
