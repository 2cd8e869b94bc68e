// Package storage 聚合存储资源的初始化，包括数据库和文件存储.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	filesClient := mgr.GetFilesClient()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/docdrop/pkg/configs"
	dbc "github.com/yeisme/docdrop/pkg/internal/storage/db"
	filec "github.com/yeisme/docdrop/pkg/internal/storage/files"
	nlog "github.com/yeisme/docdrop/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	Files *filec.Client
	DB    *dbc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()

		m, e := NewManager(ctx, cfg)
		if e != nil {
			err = e

			return
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// NewManager 按给定配置构建独立的存储管理器，测试中用于注入临时目录和内存库.
func NewManager(ctx context.Context, cfg *configs.AppConfig) (*Manager, error) {
	m := &Manager{}

	// DB
	dbi, err := dbc.New(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := dbi.Migrate(); err != nil {
		return nil, err
	}

	m.DB = dbi

	// Files
	fi, err := filec.New(ctx, &cfg.Files)
	if err != nil {
		return nil, err
	}

	m.Files = fi

	return m, nil
}

// GetFilesClient 获取文件存储客户端.
func (m *Manager) GetFilesClient() *filec.Client {
	return m.Files
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}
