package handle

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/configs"
	"github.com/yeisme/docdrop/pkg/internal/service"
	"github.com/yeisme/docdrop/pkg/log"
)

// UploadPage 上传表单页，附带该用户已有的文档列表.
func UploadPage(c *gin.Context) {
	l := log.Logger()

	userID, ok := paramUint(c, "userId")
	if !ok {
		notFoundPage(c)
		return
	}

	users := service.NewUserService(c.Request.Context())

	user, err := users.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			notFoundPage(c)
			return
		}

		l.Error().Err(err).Msg("get user failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load user.")

		return
	}

	docs := service.NewDocumentService(c.Request.Context())

	list, err := docs.ListForUser(c.Request.Context(), userID)
	if err != nil {
		l.Error().Err(err).Msg("list documents failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load documents.")

		return
	}

	c.HTML(http.StatusOK, "upload.html", gin.H{
		"User":    user,
		"Docs":    list,
		"Flashes": takeFlashes(c),
	})
}

// Upload 处理文档上传：413 在任何存储调用之前判定，
// 校验失败 flash 后重定向回上传页，成功后重定向到二维码确认页.
func Upload(c *gin.Context) {
	l := log.Logger()

	userID, ok := paramUint(c, "userId")
	if !ok {
		notFoundPage(c)
		return
	}

	users := service.NewUserService(c.Request.Context())

	user, err := users.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			notFoundPage(c)
			return
		}

		l.Error().Err(err).Msg("get user failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load user.")

		return
	}

	maxBytes := configs.GetConfig().Upload.MaxUploadBytes()

	// Content-Length 超限直接 413，不触发任何存储调用
	if c.Request.ContentLength > maxBytes {
		payloadTooLarge(c)
		return
	}

	// Content-Length 不可信时由 MaxBytesReader 兜底
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	uploadURL := fmt.Sprintf("/user/%d/upload", userID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			payloadTooLarge(c)
			return
		}

		addFlash(c, flashError, "No file part in the form.")
		c.Redirect(http.StatusFound, uploadURL)

		return
	}

	if fileHeader.Filename == "" {
		addFlash(c, flashError, "No file selected.")
		c.Redirect(http.StatusFound, uploadURL)

		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("open uploaded file failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not process file.")

		return
	}
	defer src.Close()

	docs := service.NewDocumentService(c.Request.Context())

	res, err := docs.Upload(c.Request.Context(), user, fileHeader.Filename, src, fileHeader.Size, baseURL(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilenameEmpty):
			addFlash(c, flashError, "No file selected.")
			c.Redirect(http.StatusFound, uploadURL)
		case errors.Is(err, service.ErrExtNotAllowed):
			addFlash(c, flashError, "File type not allowed. Allowed: "+allowedExtList())
			c.Redirect(http.StatusFound, uploadURL)
		default:
			l.Error().Err(err).Uint("user_id", userID).Msg("upload document failed")
			renderMessage(c, http.StatusInternalServerError, "Server error", "Could not store the document.")
		}

		return
	}

	addFlash(c, flashSuccess, "Document uploaded and QR code generated.")
	c.Redirect(http.StatusFound, "/qr/"+res.Token)
}

// ShowQR 上传确认页：展示二维码图片和公开链接.
func ShowQR(c *gin.Context) {
	l := log.Logger()

	token := c.Param("token")

	svc := service.NewDocumentService(c.Request.Context())

	doc, err := svc.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			notFoundPage(c)
			return
		}

		l.Error().Err(err).Msg("get document failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load document.")

		return
	}

	c.HTML(http.StatusOK, "my_qr.html", gin.H{
		"Doc":     doc,
		"QRFile":  "/qrcodes/" + token + ".png",
		"Link":    service.ResolveLink(baseURL(c), token),
		"Flashes": takeFlashes(c),
	})
}

// DocByToken 公开的文档元数据页. 持有令牌即可访问，没有额外鉴权.
func DocByToken(c *gin.Context) {
	l := log.Logger()

	token := c.Param("token")

	svc := service.NewDocumentService(c.Request.Context())

	doc, err := svc.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			notFoundPage(c)
			return
		}

		l.Error().Err(err).Msg("get document failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load document.")

		return
	}

	c.HTML(http.StatusOK, "document.html", gin.H{"Doc": doc})
}

// payloadTooLarge 413 提示页.
func payloadTooLarge(c *gin.Context) {
	maxMB := configs.GetConfig().Upload.MaxUploadMB
	renderMessage(c, http.StatusRequestEntityTooLarge, "File too large",
		fmt.Sprintf("The uploaded file exceeds %d MB.", maxMB))
}

// isBodyTooLarge 识别 MaxBytesReader 触发的错误.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}

	return strings.Contains(err.Error(), "request body too large")
}

func allowedExtList() string {
	return strings.Join(configs.GetConfig().Upload.AllowedExtensions, ", ")
}
