package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderUserID    = "X-Sharer-User-Id"
	HeaderRequestID = "X-Request-Id"

	ctxUserID    = "user_id"
	ctxRequestID = "request_id"
)

// RequestID берёт X-Request-Id клиента или генерирует новый
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog пишет одну строку на запрос
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(started)),
		}
		if uid, ok := c.Get(ctxUserID); ok {
			fields = append(fields, zap.Int64("user_id", uid.(int64)))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}

// RequireUser читает идентификатор действующего пользователя из X-Sharer-User-Id
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "header " + HeaderUserID + " is required"})
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "header " + HeaderUserID + " must be a positive integer"})
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
