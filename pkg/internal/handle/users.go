package handle

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/docdrop/pkg/internal/service"
	"github.com/yeisme/docdrop/pkg/internal/types"
	"github.com/yeisme/docdrop/pkg/log"
)

// Index 首页：注册表单加用户列表，最近注册的在前.
func Index(c *gin.Context) {
	l := log.Logger()

	svc := service.NewUserService(c.Request.Context())

	users, err := svc.ListUsers(c.Request.Context())
	if err != nil {
		l.Error().Err(err).Msg("list users failed")
		renderMessage(c, http.StatusInternalServerError, "Server error", "Could not load users.")

		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Users":   users,
		"Flashes": takeFlashes(c),
	})
}

// Register 处理注册表单. 校验失败 flash 后重定向回首页，不产生任何状态变更.
func Register(c *gin.Context) {
	l := log.Logger()

	var form types.RegisterForm
	// 表单字段缺失按空值处理，交给 service 校验
	_ = c.ShouldBind(&form)

	svc := service.NewUserService(c.Request.Context())

	user, err := svc.Register(c.Request.Context(), form.Name, form.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			addFlash(c, flashError, "Name is required.")
		case errors.Is(err, service.ErrEmailInvalid):
			addFlash(c, flashError, "Email address is not valid.")
		case errors.Is(err, service.ErrEmailTaken):
			addFlash(c, flashError, "Email already exists. Use a different one.")
		default:
			l.Error().Err(err).Msg("register user failed")
			renderMessage(c, http.StatusInternalServerError, "Server error", "Could not register user.")

			return
		}

		c.Redirect(http.StatusFound, "/")

		return
	}

	addFlash(c, flashSuccess, "User registered. Now upload a document for them.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/user/%d/upload", user.ID))
}
