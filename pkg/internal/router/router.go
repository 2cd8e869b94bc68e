// Package router 管理路由配置，将路径绑定到 pkg/internal/handle 的处理器.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/internal/handle"
)

// Register 绑定全部页面与文件路由:
//
//	GET  /                        首页，注册表单 + 用户列表
//	POST /register                创建用户
//	GET  /user/:userId/upload     上传表单页
//	POST /user/:userId/upload     接收上传
//	GET  /qr/:token               上传确认页（二维码 + 链接）
//	GET  /d/:token                公开访问入口，按令牌解析文档
//	GET  /uploads/:filename       按存储名读取上传文件
//	GET  /qrcodes/:filename       读取二维码 PNG
func Register(g *gin.RouterGroup) {
	g.GET("/", handle.Index)
	g.POST("/register", handle.Register)

	userRoutes := g.Group("/user/:userId")
	{
		userRoutes.GET("/upload", handle.UploadPage)
		userRoutes.POST("/upload", handle.Upload)
	}

	g.GET("/qr/:token", handle.ShowQR)
	g.GET("/d/:token", handle.DocByToken)

	g.GET("/uploads/:filename", handle.ServeUpload)
	g.GET("/qrcodes/:filename", handle.ServeQRCode)
}
