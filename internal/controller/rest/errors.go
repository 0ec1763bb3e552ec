package rest

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/shareit/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Unexpected error",
			zap.String("request_id", c.GetString(ctxRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
