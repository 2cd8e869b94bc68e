// Package files 处理文件存储操作，上传原件与生成的二维码图片各占一个命名空间.
// 默认后端为本地文件系统目录，可通过配置切换到 S3/MinIO.
//
// Example:
//
//	cli, err := files.New(ctx, &cfg.Files)
//	if err != nil {
//	    // 处理错误
//	}
//
//	err = cli.SaveUpload(ctx, storedName, reader, size)
package files

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yeisme/docdrop/pkg/configs"
	nlog "github.com/yeisme/docdrop/pkg/log"
)

// Kind 区分两个文件命名空间.
type Kind string

const (
	// KindUpload 上传原件.
	KindUpload Kind = "uploads"
	// KindQRCode 生成的二维码图片.
	KindQRCode Kind = "qrcodes"
)

// ErrNotFound 请求的文件不存在.
var ErrNotFound = errors.New("file not found")

// Store 文件存储后端接口. 名称的唯一性由调用方保证，后端不做覆盖检测.
type Store interface {
	// SaveUpload 保存上传原件，name 必须已经是防碰撞名称.
	SaveUpload(ctx context.Context, name string, r io.Reader, size int64) error
	// SaveQRCode 保存二维码 PNG 字节.
	SaveQRCode(ctx context.Context, name string, data []byte) error
	// Open 按命名空间和名称读取文件，不存在时返回 ErrNotFound.
	Open(ctx context.Context, kind Kind, name string) (io.ReadCloser, error)
	// Ping 后端可用性检查.
	Ping(ctx context.Context) error
}

// Client 包装具体的文件存储后端.
type Client struct {
	Store

	backend configs.FilesBackend
}

// New 按配置初始化文件存储后端.
func New(ctx context.Context, cfg *configs.FilesConfig) (*Client, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case configs.FilesBackendLocal:
		store, err = newLocalStore(cfg)
	case configs.FilesBackendS3:
		store, err = newS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported files backend: %s", cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("backend", string(cfg.Backend)).Msg("文件存储初始化成功")

	return &Client{Store: store, backend: cfg.Backend}, nil
}

// Backend 返回当前使用的后端类型.
func (c *Client) Backend() configs.FilesBackend {
	return c.backend
}
