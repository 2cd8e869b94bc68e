package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeisme/docdrop/pkg/configs"
	ctxPkg "github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/model"
	"github.com/yeisme/docdrop/pkg/internal/qr"
	"github.com/yeisme/docdrop/pkg/internal/storage/db"
	"github.com/yeisme/docdrop/pkg/internal/storage/files"
	"github.com/yeisme/docdrop/pkg/internal/types"
	nlog "github.com/yeisme/docdrop/pkg/log"
	"github.com/yeisme/docdrop/pkg/metrics"
)

var (
	// ErrFilenameEmpty 未选择文件或文件名为空.
	ErrFilenameEmpty = errors.New("filename is empty")
	// ErrExtNotAllowed 扩展名不在允许列表中.
	ErrExtNotAllowed = errors.New("file type not allowed")
	// ErrDocumentNotFound 令牌没有对应的文档.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrTokenCollision 令牌撞上唯一索引. 16 字节熵下基本不可能出现，
	// 出现时按服务端错误处理而不是重试.
	ErrTokenCollision = errors.New("token collision")
)

// DocumentService 负责上传工作流与令牌解析，不处理 HTTP 细节.
type DocumentService struct {
	dbClient   *db.Client
	fileClient *files.Client
	upload     configs.UploadConfig
}

// NewDocumentService 从 context 获取依赖实例.
func NewDocumentService(c context.Context) *DocumentService {
	dbc := ctxPkg.GetDBClient(c)
	fc := ctxPkg.GetFilesClient(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if dbc == nil || dbc.DB == nil || fc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &DocumentService{
		dbClient:   dbc,
		fileClient: fc,
		upload:     configs.GetConfig().Upload,
	}
}

// Upload 执行完整上传工作流：校验扩展名，清洗文件名，落盘，
// 签发访问令牌，写入文档行，生成并保存二维码.
// 二维码生成失败时不回滚文档行，令牌仍可解析，图片可按令牌重新生成.
func (s *DocumentService) Upload(ctx context.Context, user *model.User,
	originalName string, r io.Reader, size int64, baseURL string,
) (*types.UploadResult, error) {
	if strings.TrimSpace(originalName) == "" {
		return nil, ErrFilenameEmpty
	}

	if !s.extAllowed(originalName) {
		return nil, fmt.Errorf("%w: allowed: %s", ErrExtNotAllowed, strings.Join(s.upload.AllowedExtensions, ", "))
	}

	safeName := sanitizeFilename(originalName)
	storedName := storedFilename(user.ID, safeName)

	// 落盘在建行之前，行存在即文件存在
	if err := s.fileClient.SaveUpload(ctx, storedName, r, size); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	token := randomToken(accessTokenBytes)

	doc := &model.Document{
		UserID:       user.ID,
		StoredName:   storedName,
		OriginalName: safeName,
		Token:        token,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.dbClient.WithContext(ctx).Omit("User").Create(doc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTokenCollision
		}

		return nil, fmt.Errorf("create document: %w", err)
	}

	metrics.DocumentsUploaded.Inc()

	// 二维码编码公开解析链接
	link := ResolveLink(baseURL, token)

	png, err := qr.Encode(link)
	if err != nil {
		return nil, err
	}

	if err := s.fileClient.SaveQRCode(ctx, doc.QRCodeName(), png); err != nil {
		return nil, fmt.Errorf("save qrcode: %w", err)
	}

	metrics.QRCodesGenerated.Inc()

	nlog.Logger().Info().
		Uint("user_id", user.ID).
		Uint("document_id", doc.ID).
		Str("stored_name", storedName).
		Msg("document uploaded")

	return &types.UploadResult{
		DocumentID: doc.ID,
		StoredName: storedName,
		Token:      token,
		Link:       link,
	}, nil
}

// GetByToken 按令牌解析文档及属主名称. 读操作无副作用，可重复调用.
func (s *DocumentService) GetByToken(ctx context.Context, token string) (*types.DocumentInfo, error) {
	var doc model.Document
	if err := s.dbClient.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}

		return nil, fmt.Errorf("get document by token: %w", err)
	}

	return &types.DocumentInfo{
		ID:           doc.ID,
		OwnerName:    doc.User.Name,
		StoredName:   doc.StoredName,
		OriginalName: doc.OriginalName,
		Token:        doc.Token,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// ListForUser 返回指定用户的文档，最近上传的在前.
func (s *DocumentService) ListForUser(ctx context.Context, userID uint) ([]model.Document, error) {
	var docs []model.Document
	if err := s.dbClient.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// extAllowed 检查扩展名是否在允许列表中（大小写不敏感）.
func (s *DocumentService) extAllowed(name string) bool {
	ext := extension(name)
	if ext == "" {
		return false
	}

	return slices.Contains(s.upload.AllowedExtensions, ext)
}

// ResolveLink 计算令牌的公开解析链接.
func ResolveLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/d/" + token
}
