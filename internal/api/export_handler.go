package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"smartfolio/internal/api/middleware"
	"smartfolio/internal/database"
	"smartfolio/internal/render"
	"smartfolio/internal/resume"
	"smartfolio/internal/storage"
	"smartfolio/internal/tasks"
)

// ExportHandler 负责简历的同步导出、预览与异步导出入列。
type ExportHandler struct {
	db            *gorm.DB
	engine        render.Engine
	asynqClient   *asynq.Client
	storage       *storage.Client
	renderTimeout time.Duration
}

// NewExportHandler 构造 ExportHandler。
func NewExportHandler(
	db *gorm.DB,
	engine render.Engine,
	asynqClient *asynq.Client,
	storageClient *storage.Client,
	renderTimeout time.Duration,
) *ExportHandler {
	return &ExportHandler{
		db:            db,
		engine:        engine,
		asynqClient:   asynqClient,
		storage:       storageClient,
		renderTimeout: renderTimeout,
	}
}

// exportRequest 是导出/预览接口的请求体：
// 完整的文档聚合加上渲染选项，所有键都可缺省。
type exportRequest struct {
	resume.Document
	Template resume.Template `json:"template"`
	PageSize resume.PageSize `json:"pageSize"`
	FileName string          `json:"fileName"`
}

func (r exportRequest) options() resume.Options {
	return resume.Options{
		Template: r.Template,
		PageSize: r.PageSize,
		FileName: r.FileName,
	}
}

// ExportResume 同步渲染并下载 PDF。
// 流水线：Normalize -> RenderHTML -> 引擎栅格化；任一阶段失败
// 都返回 {"error": ...}，绝不返回半截 PDF。
func (h *ExportHandler) ExportResume(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc, opts := resume.Normalize(req.Document, req.options())

	html, err := resume.RenderHTML(doc, opts)
	if err != nil {
		Internal(c, "failed to render resume markup")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.renderTimeout)
	defer cancel()

	pdfBytes, err := h.engine.RenderPDF(ctx, html, opts.PageSize)
	if err != nil {
		log := middleware.LoggerFromContext(c)
		log.Error("render pdf failed", "provider", h.engine.Provider(), "error", err)
		if errors.Is(err, render.ErrEngineUnavailable) {
			Unavailable(c, "pdf render engine unavailable")
			return
		}
		Internal(c, "failed to generate pdf")
		return
	}

	fileName := resume.SanitizeFileName(opts.FileName) + ".pdf"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// PreviewResume 仅执行模板渲染，返回自包含的 HTML。
// 预览与导出共用同一个渲染函数，保证所见即所得。
func (h *ExportHandler) PreviewResume(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	doc, opts := resume.Normalize(req.Document, req.options())

	html, err := resume.RenderHTML(doc, opts)
	if err != nil {
		Internal(c, "failed to render resume markup")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type asyncExportRequest struct {
	Template resume.Template `json:"template"`
	PageSize resume.PageSize `json:"pageSize"`
	FileName string          `json:"fileName"`
}

// EnqueueExport 创建导出记录并投递异步任务。
// Worker 执行时会从存储层读取该用户的最新记录。
func (h *ExportHandler) EnqueueExport(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req asyncExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	_, opts := resume.Normalize(resume.Document{}, resume.Options{
		Template: req.Template,
		PageSize: req.PageSize,
		FileName: req.FileName,
	})

	ctx := c.Request.Context()
	export := database.ResumeExport{
		UserID:   userID,
		Status:   "pending",
		Template: string(opts.Template),
		PageSize: string(opts.PageSize),
		FileName: req.FileName,
	}
	if err := h.db.WithContext(ctx).Create(&export).Error; err != nil {
		Internal(c, "failed to create export record")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewResumeExportTask(export.ID, userID, correlationID)
	if err != nil {
		Internal(c, "failed to build export task")
		return
	}
	if _, err := h.asynqClient.EnqueueContext(ctx, task, asynq.MaxRetry(2)); err != nil {
		Internal(c, "failed to enqueue export task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"export_id":      export.ID,
		"correlation_id": correlationID,
		"status":         export.Status,
	})
}

// GetExportDownloadLink 为已完成的导出生成限时下载链接。
func (h *ExportHandler) GetExportDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	exportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid export id")
		return
	}

	ctx := c.Request.Context()
	var export database.ResumeExport
	if err := h.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", exportID, userID).
		First(&export).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "export not found")
			return
		}
		Internal(c, "failed to query export")
		return
	}

	if export.Status != "completed" || export.PdfObjectKey == "" {
		Conflict(c, "export is not completed")
		return
	}

	url, err := h.storage.GeneratePresignedURL(ctx, export.PdfObjectKey, 10*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"file_name": export.FileName,
	})
}
