package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/config"
	apperrors "expensetracker/internal/errors"
)

const (
	// CSRFCookie holds the double-submit token.
	CSRFCookie = "csrf_token"
	// CSRFField is the form field every POST must carry.
	CSRFField = "csrf_token"
	// CSRFHeader may carry the token instead of the form field.
	CSRFHeader = "X-CSRF-Token"
	// CSRFTokenKey is the gin context key holding the token for templates.
	CSRFTokenKey = "csrfToken"

	csrfTokenBytes = 32
)

// CSRF protects unsafe requests with a double-submit cookie. Each visitor
// gets a random token cookie; POST, PUT, PATCH and DELETE requests must echo
// it in the csrf_token form field or the X-CSRF-Token header.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookie)
		if err != nil || len(token) != csrfTokenBytes*2 {
			token, err = newCSRFToken()
			if err != nil {
				_ = c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookie, token, 0, "/", "", config.Get().CookieSecure, true)
		}
		c.Set(CSRFTokenKey, token)

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		sent := c.GetHeader(CSRFHeader)
		if sent == "" {
			sent = c.PostForm(CSRFField)
		}
		if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			_ = c.Error(apperrors.ErrInvalidCSRFToken)
			c.Abort()
			return
		}
		c.Next()
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
