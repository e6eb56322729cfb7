package middleware

import (
	"fmt"
	"net/http"
	apiError "support-portal/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error pushed with c.Error as JSON. It is the
// single place where error bodies are written.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next() // Execute the handler first

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		apiErr, ok := apiError.As(err)
		if !ok {
			// raw error we didn't wrap
			apiErr = apiError.Internal(err)
		}

		fields := []zap.Field{
			zap.Int("status", apiErr.Code),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.NamedError("cause", apiErr.Err),
		}
		if apiErr.Code >= http.StatusInternalServerError {
			logger.Error(apiErr.Message, fields...)
		} else {
			logger.Info(apiErr.Message, fields...)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(apiErr.Code, apiErr)
	}
}

// Recovery turns a panic into a 500 rendered by ErrorHandler, so it must be
// registered after it.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.Error(apiError.Internal(fmt.Errorf("panic: %v", recovered)))
		c.Abort()
	})
}
