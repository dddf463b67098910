package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
)

// ErrorPage is the template rendered for errors that reach ErrorHandler.
const ErrorPage = "error"

// ErrorHandler returns a Gin middleware that turns errors attached to the
// Gin context into an error page. AppErrors show their own message;
// unexpected errors are logged and shown as a generic internal error so no
// details leak. Unauthorized requests are sent to the login page.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		appErr := apperrors.ErrInternalServer
		var target *apperrors.AppError
		if errors.As(err, &target) {
			appErr = target
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
		} else {
			logger.Get().Errorw("unexpected error",
				"error", err.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
			)
		}

		if appErr.Code == apperrors.ErrUnauthorized.Code {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		c.HTML(appErr.StatusCode, ErrorPage, gin.H{
			"Title":   http.StatusText(appErr.StatusCode),
			"Status":  appErr.StatusCode,
			"Code":    appErr.Code,
			"Message": appErr.Message,
		})
	}
}
