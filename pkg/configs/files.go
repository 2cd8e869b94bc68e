package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	// FilesBackend 文件存储后端类型.
	FilesBackend string
)

const (
	// FilesBackendLocal 本地文件系统后端.
	FilesBackendLocal FilesBackend = "local"
	// FilesBackendS3 S3/MinIO 对象存储后端.
	FilesBackendS3 FilesBackend = "s3"
)

const (
	DefaultFilesBackend   = FilesBackendLocal // 默认文件存储后端
	DefaultUploadDir      = "uploads"         // 上传文件目录
	DefaultQRCodeDir      = "qrcodes"         // 二维码图片目录
	DefaultS3Endpoint     = "localhost:9000"  // 默认S3端点
	DefaultS3AccessKey    = "minioadmin"      // 默认访问密钥ID
	DefaultS3SecretKey    = "minioadmin"      // 默认秘密访问密钥
	DefaultS3UseSSL       = false             // 默认是否使用SSL
	DefaultS3UploadBucket = "docdrop-uploads" // 上传文件桶
	DefaultS3QRCodeBucket = "docdrop-qrcodes" // 二维码图片桶
	DefaultS3Region       = "us-east-1"       // 默认区域
)

// FilesConfig 文件存储配置，上传原件和生成的二维码各占一个命名空间.
type FilesConfig struct {
	Backend   FilesBackend `mapstructure:"backend"    rule:"oneof=local s3"`
	UploadDir string       `mapstructure:"upload_dir"`
	QRCodeDir string       `mapstructure:"qrcode_dir"`

	// S3 后端配置，Backend 为 s3 时生效.
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	UploadBucket    string `mapstructure:"upload_bucket"`
	QRCodeBucket    string `mapstructure:"qrcode_bucket"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL 获取完整的S3端点URL.
func (c *FilesConfig) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// setDefaults 设置文件存储配置的默认值.
func (c *FilesConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("files.backend", DefaultFilesBackend)
	v.SetDefault("files.upload_dir", DefaultUploadDir)
	v.SetDefault("files.qrcode_dir", DefaultQRCodeDir)
	v.SetDefault("files.endpoint", DefaultS3Endpoint)
	v.SetDefault("files.access_key_id", DefaultS3AccessKey)
	v.SetDefault("files.secret_access_key", DefaultS3SecretKey)
	v.SetDefault("files.use_ssl", DefaultS3UseSSL)
	v.SetDefault("files.upload_bucket", DefaultS3UploadBucket)
	v.SetDefault("files.qrcode_bucket", DefaultS3QRCodeBucket)
	v.SetDefault("files.region", DefaultS3Region)
}
