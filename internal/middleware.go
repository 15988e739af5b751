package spycatagency

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIdHeader = "X-Request-ID"
	requestIdKey    = "request_id"
)

// requestId keeps a caller supplied UUID or generates a new one.
func requestId() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		ctx.Set(requestIdKey, id)
		ctx.Header(requestIdHeader, id)
		ctx.Next()
	}
}

func accessLog(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		status := ctx.Writer.Status()
		fields := []any{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", ctx.GetString(requestIdKey),
		}
		if len(ctx.Errors) > 0 {
			fields = append(fields, "errors", ctx.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorw("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Infow("request rejected", fields...)
		default:
			logger.Debugw("request", fields...)
		}
	}
}

func recovery(logger *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, err any) {
		logger.Errorw("panic while handling request",
			"panic", err,
			"path", ctx.Request.URL.Path,
			"request_id", ctx.GetString(requestIdKey))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
