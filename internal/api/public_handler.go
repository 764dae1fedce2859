package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartfolio/internal/api/middleware"
	"smartfolio/internal/records"
	"smartfolio/internal/resume"
)

// PublicHandler 提供免登录的公开简历页面。
// 分享链接以档案邮箱为键，找不到档案一律返回 404，不区分用户是否存在。
type PublicHandler struct {
	loader *records.Loader
	logger *slog.Logger
}

// NewPublicHandler 构造公开分享处理器。
func NewPublicHandler(loader *records.Loader, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{loader: loader, logger: logger}
}

// ViewResume 渲染公开简历 HTML 页面。
func (h *PublicHandler) ViewResume(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email == "" {
		NotFound(c, "resume not found")
		return
	}

	ctx := c.Request.Context()
	logger := h.loggerFromContext(c).With(slog.String("email", email))

	userID, err := h.loader.FindUserIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "resume not found")
			return
		}
		logger.Error("public resume lookup failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	doc, err := h.loader.LoadDocument(ctx, userID)
	if err != nil {
		logger.Error("public resume load failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	// 公开页面采用默认模板，query 可选择其它模板。
	doc, opts := resume.Normalize(doc, resume.Options{
		Template: resume.Template(c.Query("template")),
		PageSize: resume.PageSizeA4,
	})

	html, err := resume.RenderHTML(doc, opts)
	if err != nil {
		logger.Error("public resume render failed", slog.Any("error", err))
		Internal(c, "internal error")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *PublicHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
