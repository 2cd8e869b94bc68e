// Package handle 提供请求处理器的实现，渲染服务端模板并调用 service 层.
package handle

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/configs"
)

// flash 分类，与模板中的样式类名保持一致.
const (
	flashError   = "error"
	flashSuccess = "success"
)

// addFlash 追加一条 flash 消息，跟随下一次渲染消费.
func addFlash(c *gin.Context, category, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, category)
	_ = sess.Save()
}

// takeFlashes 取出并清空当前会话的 flash 消息.
func takeFlashes(c *gin.Context) map[string][]string {
	sess := sessions.Default(c)
	out := make(map[string][]string, 2)

	for _, category := range []string{flashError, flashSuccess} {
		for _, v := range sess.Flashes(category) {
			if s, ok := v.(string); ok {
				out[category] = append(out[category], s)
			}
		}
	}

	_ = sess.Save()

	return out
}

// renderMessage 渲染带状态码的提示页，404/413/500 共用.
func renderMessage(c *gin.Context, status int, title, message string) {
	c.HTML(status, "message.html", gin.H{
		"Title":   title,
		"Message": message,
	})
}

// notFoundPage 统一的 404 提示页.
func notFoundPage(c *gin.Context) {
	renderMessage(c, http.StatusNotFound, "Not found", "The requested item was not found.")
}

// baseURL 计算对外基础 URL：配置优先，否则按请求推导.
func baseURL(c *gin.Context) string {
	if cfg := configs.GetConfig().Server.BaseURL; cfg != "" {
		return strings.TrimRight(cfg, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	return scheme + "://" + c.Request.Host
}

// paramUint 解析路径里的数字参数.
func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(v), true
}
