package configs

import "github.com/spf13/viper"

const (
	// DefaultMaxUploadMB 单次上传请求体上限（MiB），超出时直接响应 413.
	DefaultMaxUploadMB = 10

	bytesPerMiB = 1024 * 1024
)

// DefaultAllowedExtensions 默认允许的上传文件扩展名.
var DefaultAllowedExtensions = []string{"pdf", "jpg", "jpeg", "png", "webp"}

// UploadConfig 上传限制配置.
type UploadConfig struct {
	MaxUploadMB       int      `mapstructure:"max_upload_mb"      rule:"min=1"`
	AllowedExtensions []string `mapstructure:"allowed_extensions" rule:"min=1"`
}

// MaxUploadBytes 返回请求体上限（字节）.
func (c *UploadConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * bytesPerMiB
}

// setDefaults 设置上传限制配置的默认值.
func (c *UploadConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("upload.max_upload_mb", DefaultMaxUploadMB)
	v.SetDefault("upload.allowed_extensions", DefaultAllowedExtensions)
}
