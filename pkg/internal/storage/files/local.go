package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yeisme/docdrop/pkg/configs"
)

// localStore 本地文件系统后端，uploads 与 qrcodes 各一个目录.
type localStore struct {
	dirs map[Kind]string
}

// newLocalStore 创建目录并返回本地后端.
func newLocalStore(cfg *configs.FilesConfig) (*localStore, error) {
	s := &localStore{
		dirs: map[Kind]string{
			KindUpload: cfg.UploadDir,
			KindQRCode: cfg.QRCodeDir,
		},
	}

	for kind, dir := range s.dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s dir: %w", kind, err)
		}
	}

	return s, nil
}

// path 拼接落盘路径. filepath.Base 兜底，路径遍历在上层清洗后不应该再出现.
func (s *localStore) path(kind Kind, name string) string {
	return filepath.Join(s.dirs[kind], filepath.Base(name))
}

func (s *localStore) SaveUpload(_ context.Context, name string, r io.Reader, _ int64) error {
	f, err := os.Create(s.path(KindUpload, name))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}

	return nil
}

func (s *localStore) SaveQRCode(_ context.Context, name string, data []byte) error {
	if err := os.WriteFile(s.path(KindQRCode, name), data, 0o644); err != nil {
		return fmt.Errorf("write qrcode file: %w", err)
	}

	return nil
}

func (s *localStore) Open(_ context.Context, kind Kind, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(kind, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("open %s file: %w", kind, err)
	}

	return f, nil
}

// Ping 检查两个目录均可访问.
func (s *localStore) Ping(_ context.Context) error {
	for kind, dir := range s.dirs {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("stat %s dir: %w", kind, err)
		}
	}

	return nil
}
