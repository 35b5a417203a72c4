package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"conversation_backend/internal/feature/auth/domain/entity"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the session-signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"

	// CookieName is the cookie carrying the signed session token.
	CookieName = "session_token"

	// LoginPath is where unauthenticated requests are redirected.
	LoginPath = "/login"
)

// Context keys populated by AuthRequired.
const (
	ContextUserID    = "userID"
	ContextUsername  = "username"
	ContextSessionID = "sessionID"
)

// SessionChecker looks up the server-side session record behind a token.
// The session repository satisfies it.
type SessionChecker interface {
	FindByID(ctx context.Context, id string) (*entity.Session, error)
}

// Middleware authenticates requests against both the token signature and the
// backing session record, so logout revokes access for tokens that are still
// within their signed lifetime.
type Middleware struct {
	sessions SessionChecker
}

// NewMiddleware creates the auth middleware over the given session store.
func NewMiddleware(sessions SessionChecker) *Middleware {
	return &Middleware{sessions: sessions}
}

// AuthRequired returns a Gin middleware function that validates session
// tokens and restricts access to authenticated users. Unauthenticated
// requests are redirected to the login page, never rejected with an error
// page.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		claims, err := parseToken(tokenStr, secret)
		if err != nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if !m.sessionValid(c.Request.Context(), claims) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		setContext(c, claims)
		c.Next()
	}
}

// Authenticated reports whether the request carries a valid session token
// backed by a live session record. Login and register pages use it to bounce
// already-signed-in users home.
func (m *Middleware) Authenticated(c *gin.Context) bool {
	tokenStr := TokenFromRequest(c)
	if tokenStr == "" {
		return false
	}
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return false
	}
	claims, err := parseToken(tokenStr, secret)
	if err != nil {
		return false
	}
	return m.sessionValid(c.Request.Context(), claims)
}

// sessionValid resolves the sid claim and checks the session record behind
// it. A token without a sid, or whose session is gone, expired or revoked,
// does not authenticate.
func (m *Middleware) sessionValid(ctx context.Context, claims jwt.MapClaims) bool {
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return false
	}
	session, err := m.sessions.FindByID(ctx, sid)
	if err != nil {
		return false
	}
	return session.IsValid()
}

// TokenFromRequest extracts the session token from the session cookie,
// falling back to an Authorization Bearer header for non-browser clients.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// parseToken verifies the token signature and returns its claims.
func parseToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// setContext copies the identity claims into the request context.
func setContext(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
		c.Set(ContextUserID, uint(sub))
	}
	if name, ok := claims["name"].(string); ok {
		c.Set(ContextUsername, name)
	}
	if sid, ok := claims["sid"].(string); ok {
		c.Set(ContextSessionID, sid)
	}
}
