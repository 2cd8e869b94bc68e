package configs

import "github.com/spf13/viper"

const (
	// DefaultSessionSecret 开发用默认密钥，生产环境必须通过配置或 DOCDROP_SESSION_SECRET 覆盖.
	DefaultSessionSecret = "dev-secret-change-me"
	DefaultSessionName   = "docdrop_session" // 会话 cookie 名称
	DefaultSessionMaxAge = 86400             // 会话有效期，单位秒
)

// SessionConfig 会话与 flash 消息配置.
type SessionConfig struct {
	Secret string `mapstructure:"secret" rule:"required"`
	Name   string `mapstructure:"name"`
	MaxAge int    `mapstructure:"max_age" rule:"min=1"`
}

// setDefaults 设置会话配置的默认值.
func (c *SessionConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("session.secret", DefaultSessionSecret)
	v.SetDefault("session.name", DefaultSessionName)
	v.SetDefault("session.max_age", DefaultSessionMaxAge)
}
