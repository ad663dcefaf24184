package middleware

import (
	"context"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"

	"linkshort-go/internal/apperrors"
	"linkshort-go/internal/metrics"
	"linkshort-go/internal/repository"
)

const apiKeyHeader = "x-api-key"

// 读取 settings 行的超时
const settingFetchTimeout = 300 * time.Millisecond

// HashAPIKey 计算 API key 的 SHA3-256 十六进制摘要，settings 表存的就是这个值
func HashAPIKey(apiKey string) string {
	digest := sha3.Sum256([]byte(apiKey))
	return hex.EncodeToString(digest[:])
}

// AuthMiddleware 校验 x-api-key 请求头。
// 摘要与 settings 表中的全局 key 比对，不在任何地方落明文。
func AuthMiddleware(settings *repository.SettingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(apiKeyHeader)
		if apiKey == "" {
			zap.L().Error("Unauthorized call to API: No key header received",
				zap.String("uri", c.Request.URL.Path),
			)
			metrics.UnauthenticatedCalls.WithLabelValues(c.Request.URL.Path).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), settingFetchTimeout)
		defer cancel()

		setting, err := settings.Get(ctx)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if setting == nil {
			_ = c.Error(apperrors.SystemError("settings row missing"))
			c.Abort()
			return
		}

		if setting.EncryptedGlobalAPIKey != HashAPIKey(apiKey) {
			zap.L().Error("Unauthorized call to API: Incorrect key supplied",
				zap.String("uri", c.Request.URL.Path),
			)
			metrics.UnauthenticatedCalls.WithLabelValues(c.Request.URL.Path).Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
