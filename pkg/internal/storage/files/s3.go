package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/docdrop/pkg/configs"
	nlog "github.com/yeisme/docdrop/pkg/log"
)

// s3Store S3/MinIO 后端，两个命名空间映射为两个桶.
type s3Store struct {
	cli     *minio.Client
	buckets map[Kind]string
}

// newS3Store 初始化 MinIO 客户端，桶不存在时创建.
func newS3Store(ctx context.Context, cfg *configs.FilesConfig) (*s3Store, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("docdrop", configs.AppVersion)

	s := &s3Store{
		cli: cli,
		buckets: map[Kind]string{
			KindUpload: cfg.UploadBucket,
			KindQRCode: cfg.QRCodeBucket,
		},
	}

	// ensure all buckets
	for kind, bkt := range s.buckets {
		exists, err := cli.BucketExists(ctx, bkt)
		if err != nil {
			return nil, fmt.Errorf("check bucket %s: %w", bkt, err)
		}

		if !exists {
			if err := cli.MakeBucket(ctx, bkt, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
				return nil, fmt.Errorf("create bucket %s: %w", bkt, err)
			}

			nlog.Logger().Info().Str("bucket", bkt).Str("kind", string(kind)).Msg("bucket created")
		}
	}

	return s, nil
}

func (s *s3Store) SaveUpload(ctx context.Context, name string, r io.Reader, size int64) error {
	_, err := s.cli.PutObject(ctx, s.buckets[KindUpload], name, r, size, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("put upload object: %w", err)
	}

	return nil
}

func (s *s3Store) SaveQRCode(ctx context.Context, name string, data []byte) error {
	_, err := s.cli.PutObject(ctx, s.buckets[KindQRCode], name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/png"})
	if err != nil {
		return fmt.Errorf("put qrcode object: %w", err)
	}

	return nil
}

func (s *s3Store) Open(ctx context.Context, kind Kind, name string) (io.ReadCloser, error) {
	obj, err := s.cli.GetObject(ctx, s.buckets[kind], name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s object: %w", kind, err)
	}

	// GetObject 懒加载，Stat 确认对象存在
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()

		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("stat %s object: %w", kind, err)
	}

	return obj, nil
}

// Ping 通过列桶验证连接.
func (s *s3Store) Ping(ctx context.Context) error {
	_, err := s.cli.ListBuckets(ctx)
	return err
}
