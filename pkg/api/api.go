// Package api 将页面、文件与健康检查路由组装到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/internal/router"
)

// RegisterGroup 注册全部路由到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	root := e.Group("")

	router.Register(root)
	router.RegisterHealthCheckRoute(root)

	return e
}
