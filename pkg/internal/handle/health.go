package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/docdrop/pkg/context"
)

// Health 整体健康检查.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HealthDB 数据库连通性检查.
func HealthDB(c *gin.Context) {
	client := ctxPkg.GetDBClient(c.Request.Context())
	if client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "detail": "db client not initialized"})
		return
	}

	sqlDB, err := client.DB.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HealthFiles 文件存储连通性检查.
func HealthFiles(c *gin.Context) {
	client := ctxPkg.GetFilesClient(c.Request.Context())
	if client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "detail": "files client not initialized"})
		return
	}

	if err := client.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
