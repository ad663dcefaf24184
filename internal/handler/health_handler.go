package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 存活探针（GET /health）
func Health(c *gin.Context) {
	c.String(http.StatusOK, "Service is healthy")
}
