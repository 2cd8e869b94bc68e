package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/storage"
)

// StorageMiddleware 将存储管理器注入每个请求的 context，
// 供 service 层通过 pkg/context 取用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
