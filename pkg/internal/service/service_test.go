package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/yeisme/docdrop/pkg/configs"
	ctxPkg "github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/service"
	"github.com/yeisme/docdrop/pkg/internal/storage"
	"github.com/yeisme/docdrop/pkg/internal/storage/files"
)

// newTestContext 构建带独立存储的测试 context：临时目录里的 SQLite 库和文件目录.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	if err := configs.InitConfig(""); err != nil {
		t.Fatalf("init config: %v", err)
	}

	dir := t.TempDir()

	cfg := configs.GetConfig()
	cfg.DB.Type = configs.SQLite
	cfg.DB.Database = filepath.Join(dir, "test")
	cfg.Files.Backend = configs.FilesBackendLocal
	cfg.Files.UploadDir = filepath.Join(dir, "uploads")
	cfg.Files.QRCodeDir = filepath.Join(dir, "qrcodes")
	cfg.Metrics.Enabled = false

	mgr, err := storage.NewManager(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new storage manager: %v", err)
	}

	return ctxPkg.WithStorageManager(context.Background(), mgr)
}

// TestRegister 测试注册：必填名称、可选邮箱、唯一约束.
func TestRegister(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewUserService(ctx)

	// 正常注册
	user, err := svc.Register(ctx, "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.ID == 0 {
		t.Error("expected non-zero user id")
	}

	// 名称为空
	if _, err := svc.Register(ctx, "   ", ""); !errors.Is(err, service.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}

	// 邮箱格式非法
	if _, err := svc.Register(ctx, "Bob", "not-an-email"); !errors.Is(err, service.ErrEmailInvalid) {
		t.Errorf("expected ErrEmailInvalid, got %v", err)
	}

	// 邮箱重复
	if _, err := svc.Register(ctx, "Bob", "alice@example.com"); !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	// 多个无邮箱用户互不冲突
	if _, err := svc.Register(ctx, "Carol", ""); err != nil {
		t.Errorf("register without email: %v", err)
	}

	if _, err := svc.Register(ctx, "Dave", ""); err != nil {
		t.Errorf("second register without email: %v", err)
	}
}

// TestGetUser 测试按 id 查询.
func TestGetUser(t *testing.T) {
	ctx := newTestContext(t)
	svc := service.NewUserService(ctx)

	created, err := svc.Register(ctx, "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}

	if got.Name != "Alice" {
		t.Errorf("got name %q, want Alice", got.Name)
	}

	if _, err := svc.GetUser(ctx, 9999); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// TestUploadWorkflow 测试完整上传工作流：校验、落盘、令牌、二维码、解析.
func TestUploadWorkflow(t *testing.T) {
	ctx := newTestContext(t)
	users := service.NewUserService(ctx)
	docs := service.NewDocumentService(ctx)

	user, err := users.Register(ctx, "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	content := []byte("%PDF-1.4 test content")

	res, err := docs.Upload(ctx, user, "my report.pdf", bytes.NewReader(content), int64(len(content)), "http://example.com")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if len(res.Token) < 22 {
		t.Errorf("token too short: %q", res.Token)
	}

	if res.Link != "http://example.com/d/"+res.Token {
		t.Errorf("unexpected link %q", res.Link)
	}

	mgr := ctxPkg.GetManager(ctx)

	// 原件落盘且内容一致
	rc, err := mgr.Files.Open(ctx, files.KindUpload, res.StoredName)
	if err != nil {
		t.Fatalf("open stored upload: %v", err)
	}

	stored, _ := io.ReadAll(rc)
	rc.Close()

	if !bytes.Equal(stored, content) {
		t.Error("stored content does not match uploaded content")
	}

	// 二维码已生成，PNG 魔数
	qrc, err := mgr.Files.Open(ctx, files.KindQRCode, res.Token+".png")
	if err != nil {
		t.Fatalf("open qrcode: %v", err)
	}

	png, _ := io.ReadAll(qrc)
	qrc.Close()

	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("qrcode file is not a PNG")
	}

	// 按令牌解析
	info, err := docs.GetByToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}

	if info.OwnerName != "Alice" {
		t.Errorf("owner name = %q, want Alice", info.OwnerName)
	}

	if info.OriginalName != "my_report.pdf" {
		t.Errorf("original name = %q, want my_report.pdf", info.OriginalName)
	}
}

// TestUploadValidation 测试扩展名与文件名校验.
func TestUploadValidation(t *testing.T) {
	ctx := newTestContext(t)
	users := service.NewUserService(ctx)
	docs := service.NewDocumentService(ctx)

	user, err := users.Register(ctx, "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// 不允许的扩展名
	_, err = docs.Upload(ctx, user, "malware.exe", bytes.NewReader([]byte("x")), 1, "http://example.com")
	if !errors.Is(err, service.ErrExtNotAllowed) {
		t.Errorf("expected ErrExtNotAllowed, got %v", err)
	}

	// 没有扩展名
	_, err = docs.Upload(ctx, user, "noext", bytes.NewReader([]byte("x")), 1, "http://example.com")
	if !errors.Is(err, service.ErrExtNotAllowed) {
		t.Errorf("expected ErrExtNotAllowed for missing extension, got %v", err)
	}

	// 空文件名
	_, err = docs.Upload(ctx, user, "   ", bytes.NewReader([]byte("x")), 1, "http://example.com")
	if !errors.Is(err, service.ErrFilenameEmpty) {
		t.Errorf("expected ErrFilenameEmpty, got %v", err)
	}

	// 大写扩展名应当被接受
	if _, err := docs.Upload(ctx, user, "photo.JPG", bytes.NewReader([]byte("x")), 1, "http://example.com"); err != nil {
		t.Errorf("uppercase extension should be accepted, got %v", err)
	}
}

// TestGetByTokenNotFound 未知令牌返回 ErrDocumentNotFound.
func TestGetByTokenNotFound(t *testing.T) {
	ctx := newTestContext(t)
	docs := service.NewDocumentService(ctx)

	if _, err := docs.GetByToken(ctx, "does-not-exist"); !errors.Is(err, service.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

// TestListForUser 最近上传的在前.
func TestListForUser(t *testing.T) {
	ctx := newTestContext(t)
	users := service.NewUserService(ctx)
	docs := service.NewDocumentService(ctx)

	user, err := users.Register(ctx, "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, name := range []string{"first.pdf", "second.pdf"} {
		if _, err := docs.Upload(ctx, user, name, bytes.NewReader([]byte("x")), 1, "http://example.com"); err != nil {
			t.Fatalf("upload %s: %v", name, err)
		}
	}

	list, err := docs.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("got %d documents, want 2", len(list))
	}

	if list[0].OriginalName != "second.pdf" {
		t.Errorf("newest document should come first, got %q", list[0].OriginalName)
	}
}
