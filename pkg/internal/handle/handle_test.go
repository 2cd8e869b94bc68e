package handle_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/configs"
	ctxPkg "github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/router"
	"github.com/yeisme/docdrop/pkg/internal/service"
	"github.com/yeisme/docdrop/pkg/internal/storage"
	"github.com/yeisme/docdrop/pkg/middleware"
)

// newTestServer 组装带独立存储的 gin 引擎，临时目录承载 SQLite 库和文件目录.
func newTestServer(t *testing.T) (*gin.Engine, *storage.Manager) {
	t.Helper()

	gin.SetMode(gin.TestMode)

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

	engine := gin.New()
	engine.Use(
		middleware.SessionMiddleware(cfg.Session),
		middleware.StorageMiddleware(mgr),
	)
	engine.LoadHTMLGlob("../../../templates/*.html")

	router.Register(engine.Group(""))

	return engine, mgr
}

// multipartBody 构建带单个文件字段的 multipart 请求体.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}

	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}

	w.Close()

	return buf, w.FormDataContentType()
}

// TestRegisterRedirects 注册成功后重定向到上传页，校验失败回首页.
func TestRegisterRedirects(t *testing.T) {
	engine, _ := newTestServer(t)

	// 成功注册
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader("name=Alice&email=alice%40example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	if loc := w.Header().Get("Location"); !strings.HasSuffix(loc, "/upload") {
		t.Errorf("location = %q, want .../upload", loc)
	}

	// 名称缺失回首页
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("name="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Errorf("status = %d location = %q, want 302 /", w.Code, w.Header().Get("Location"))
	}

	// 邮箱重复也回首页
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader("name=Bob&email=alice%40example.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Errorf("status = %d location = %q, want 302 /", w.Code, w.Header().Get("Location"))
	}
}

// TestIndexListsUsers 首页渲染用户列表.
func TestIndexListsUsers(t *testing.T) {
	engine, mgr := newTestServer(t)
	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if _, err := service.NewUserService(ctx).Register(ctx, "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Alice") {
		t.Error("index page should list registered users")
	}
}

// TestUploadFlow 端到端：上传、二维码确认页、令牌解析、文件读回.
func TestUploadFlow(t *testing.T) {
	engine, mgr := newTestServer(t)
	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	user, err := service.NewUserService(ctx).Register(ctx, "Alice", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	content := []byte("%PDF-1.4 e2e")
	body, contentType := multipartBody(t, "report.pdf", content)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/1/upload", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("upload status = %d, want 302, body: %s", w.Code, w.Body.String())
	}

	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/qr/") {
		t.Fatalf("location = %q, want /qr/{token}", loc)
	}

	token := strings.TrimPrefix(loc, "/qr/")

	// 确认页包含二维码图片和解析链接
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, loc, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("qr page status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "/qrcodes/"+token+".png") {
		t.Error("qr page should reference the qrcode image")
	}

	if !strings.Contains(w.Body.String(), "/d/"+token) {
		t.Error("qr page should contain the share link")
	}

	// 公开解析页
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/d/"+token, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("resolve status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), "report.pdf") {
		t.Error("resolve page should show the original filename")
	}

	// 二维码图片可读，PNG 魔数
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/qrcodes/"+token+".png", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("qrcode image status = %d, want 200", w.Code)
	}

	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("qrcode endpoint should return a PNG")
	}

	// 原件可按存储名读回
	info, err := service.NewDocumentService(ctx).GetByToken(ctx, token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/"+info.StoredName, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("uploads status = %d, want 200", w.Code)
	}

	got, _ := io.ReadAll(w.Body)
	if !bytes.Equal(got, content) {
		t.Error("served upload content mismatch")
	}

	if info.OwnerName != user.Name {
		t.Errorf("owner = %q, want %q", info.OwnerName, user.Name)
	}
}

// TestUploadRejectsExtension 不允许的扩展名 flash 后重定向回上传页.
func TestUploadRejectsExtension(t *testing.T) {
	engine, mgr := newTestServer(t)
	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if _, err := service.NewUserService(ctx).Register(ctx, "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	body, contentType := multipartBody(t, "malware.exe", []byte("MZ"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/1/upload", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/user/1/upload" {
		t.Errorf("status = %d location = %q, want 302 back to the upload page",
			w.Code, w.Header().Get("Location"))
	}
}

// TestUploadTooLarge 请求体超限直接 413，不触发存储.
func TestUploadTooLarge(t *testing.T) {
	engine, mgr := newTestServer(t)
	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if _, err := service.NewUserService(ctx).Register(ctx, "Alice", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	body, contentType := multipartBody(t, "big.pdf", []byte("x"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/1/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = configs.GetConfig().Upload.MaxUploadBytes() + 1
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
}

// TestNotFoundPages 未知令牌、未知文件、未知用户均渲染 404 页.
func TestNotFoundPages(t *testing.T) {
	engine, _ := newTestServer(t)

	for _, path := range []string{
		"/d/does-not-exist",
		"/qr/does-not-exist",
		"/uploads/missing.pdf",
		"/qrcodes/missing.png",
		"/user/999/upload",
	} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, w.Code)
		}
	}
}

// TestHealthEndpoints 健康检查路由.
func TestHealthEndpoints(t *testing.T) {
	engine, _ := newTestServer(t)

	root := engine.Group("")
	router.RegisterHealthCheckRoute(root)

	for _, path := range []string{"/health", "/health/db", "/health/files"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}
}
