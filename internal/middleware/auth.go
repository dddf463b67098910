package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"expensetracker/internal/config"
	"expensetracker/internal/models"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "session"

	// UserIDKey is the gin context key of the authenticated user ID.
	UserIDKey = "userID"
	// UsernameKey is the gin context key of the authenticated username.
	UsernameKey = "username"

	issuer = "expensetracker"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// SessionClaims represents the claims in the session token
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for user. It returns the token
// and its expiry.
func GenerateSessionToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(config.Get().JWTExpirationDur)
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(getJWTKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// SetSessionCookie stores the session token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(time.Until(expiresAt).Seconds()), "/", "", config.Get().CookieSecure, true)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", config.Get().CookieSecure, true)
}

func sessionClaims(c *gin.Context) (*SessionClaims, bool) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return nil, false
	}
	claims, err := ParseSessionToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware verifies the session cookie and sets the user in the
// context. Visitors without a valid session are sent to the login page.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c)
		if !ok {
			ClearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged-in users from the login and
// registration pages to the dashboard.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sessionClaims(c); ok {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
