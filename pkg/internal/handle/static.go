package handle

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/docdrop/pkg/context"
	"github.com/yeisme/docdrop/pkg/internal/storage/files"
	"github.com/yeisme/docdrop/pkg/log"
)

// ServeUpload 按存储名直接读取上传文件. 该路由没有令牌校验，
// 仅用于演示环境，生产部署应以 /d/{token} 作为唯一入口.
func ServeUpload(c *gin.Context) {
	serveStored(c, files.KindUpload)
}

// ServeQRCode 读取二维码 PNG.
func ServeQRCode(c *gin.Context) {
	serveStored(c, files.KindQRCode)
}

// serveStored 从文件存储读出对象并写回响应，按扩展名推断 Content-Type.
func serveStored(c *gin.Context, kind files.Kind) {
	l := log.Logger()

	name := c.Param("filename")

	client := ctxPkg.GetFilesClient(c.Request.Context())
	if client == nil {
		renderMessage(c, http.StatusInternalServerError, "Server error", "File storage unavailable.")
		return
	}

	rc, err := client.Open(c.Request.Context(), kind, name)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			notFoundPage(c)
			return
		}

		l.Error().Err(err).Str("kind", string(kind)).Str("name", name).Msg("open stored file failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not read file.")

		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		ct = "application/octet-stream"
	}

	c.Header("Content-Type", ct)
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, rc); err != nil {
		l.Warn().Err(err).Str("name", name).Msg("write file response interrupted")
	}
}
