package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
	"github.com/caioogatalabs/dashboard-workshop/internal/logger"
)

// ErrorHandler renders the last error attached to the context as
// {"error": {"code", "message"}} unless a handler already answered. Binding
// failures become INVALID_INPUT and unknown errors INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		requestID := c.GetString(requestIDKey)

		appErr, ok := apperrors.From(last.Err)
		switch {
		case ok:
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"request_id", requestID,
					"code", appErr.Code,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
		case last.IsType(gin.ErrorTypeBind):
			appErr = apperrors.WithMessage(apperrors.ErrInvalidInput, last.Err.Error())
		default:
			logger.Get().Errorw("unexpected error",
				"request_id", requestID,
				"error", last.Err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"error": gin.H{"code": appErr.Code, "message": appErr.Message},
		})
	}
}
