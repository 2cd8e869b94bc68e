package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/configs"
)

// SessionMiddleware 基于 cookie 的会话存储，用于 flash 消息.
func SessionMiddleware(cfg configs.SessionConfig) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
	})

	return sessions.Sessions(cfg.Name, store)
}
